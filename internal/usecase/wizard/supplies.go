package wizard

import (
	"fmt"

	"github.com/lavamax/console/internal/domain"
	"github.com/lavamax/console/internal/usecase/refdata"
)

// SupplyAggregator maintains the deduplicated, quantity-summed list of
// supplies consumed during the service. Entries are unique by supply
// identity; adding a quantity for an existing identity increments it.
// Display order is first-insertion order.
type SupplyAggregator struct {
	bundle  *refdata.Bundle
	entries []domain.SupplyUsage
}

// NewSupplyAggregator creates an empty aggregator validating against the
// supply catalog of the given bundle.
func NewSupplyAggregator(bundle *refdata.Bundle) *SupplyAggregator {
	return &SupplyAggregator{
		bundle:  bundle,
		entries: []domain.SupplyUsage{},
	}
}

// Add records a quantity of a supply. An unknown supply id or a
// non-positive quantity is rejected with ErrInvalidSelection and leaves
// the selection untouched.
func (a *SupplyAggregator) Add(supplyID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidSelection, quantity)
	}
	if _, ok := a.bundle.SupplyByID(supplyID); !ok {
		return fmt.Errorf("%w: unknown supply %d", domain.ErrInvalidSelection, supplyID)
	}

	for i := range a.entries {
		if a.entries[i].SupplyID == supplyID {
			a.entries[i].QuantityUsed += quantity
			return nil
		}
	}

	a.entries = append(a.entries, domain.SupplyUsage{
		SupplyID:     supplyID,
		QuantityUsed: quantity,
	})
	return nil
}

// Remove deletes the entry for a supply identity. Removing an absent
// identity is a no-op, not an error.
func (a *SupplyAggregator) Remove(supplyID int) {
	for i := range a.entries {
		if a.entries[i].SupplyID == supplyID {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return
		}
	}
}

// List returns a snapshot of the current selection in insertion order.
func (a *SupplyAggregator) List() []domain.SupplyUsage {
	snapshot := make([]domain.SupplyUsage, len(a.entries))
	copy(snapshot, a.entries)
	return snapshot
}
