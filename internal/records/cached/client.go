package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lavamax/console/internal/domain"
	"github.com/lavamax/console/internal/pkg/logger"
	"github.com/lavamax/console/internal/records"
)

const (
	keyEmployees    = "refdata:empleados"
	keyVehicles     = "refdata:vehiculos"
	keyVehicleTypes = "refdata:tipos-vehiculo"
	keyWashTypes    = "refdata:tipos-lavado"
	keySupplies     = "refdata:insumos"
)

// Cache is the slice of the Redis wrapper the reference cache needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Client adds Redis read-through caching for the reference lists of the
// records API. Cache failures degrade to the underlying client: a broken
// cache never fails a read. Writes pass through and invalidate the keys
// they make stale.
type Client struct {
	records.Client

	cache Cache
	ttl   time.Duration
	log   logger.Logger
}

// New wraps a records client with the reference cache.
func New(inner records.Client, cache Cache, ttl time.Duration, log logger.Logger) *Client {
	return &Client{
		Client: inner,
		cache:  cache,
		ttl:    ttl,
		log:    log,
	}
}

func (c *Client) ListEmployees(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	// Only the active-employee list is cached; the full list is an
	// admin-screen concern and is fetched rarely.
	if !activeOnly {
		return c.Client.ListEmployees(ctx, false)
	}
	var out []domain.Employee
	err := readThrough(ctx, c, keyEmployees, &out, func() ([]domain.Employee, error) {
		return c.Client.ListEmployees(ctx, true)
	})
	return out, err
}

func (c *Client) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	err := readThrough(ctx, c, keyVehicles, &out, func() ([]domain.Vehicle, error) {
		return c.Client.ListVehicles(ctx)
	})
	return out, err
}

func (c *Client) ListVehicleTypes(ctx context.Context) ([]domain.VehicleType, error) {
	var out []domain.VehicleType
	err := readThrough(ctx, c, keyVehicleTypes, &out, func() ([]domain.VehicleType, error) {
		return c.Client.ListVehicleTypes(ctx)
	})
	return out, err
}

func (c *Client) ListWashTypes(ctx context.Context) ([]domain.WashType, error) {
	var out []domain.WashType
	err := readThrough(ctx, c, keyWashTypes, &out, func() ([]domain.WashType, error) {
		return c.Client.ListWashTypes(ctx)
	})
	return out, err
}

func (c *Client) ListSupplies(ctx context.Context) ([]domain.Supply, error) {
	var out []domain.Supply
	err := readThrough(ctx, c, keySupplies, &out, func() ([]domain.Supply, error) {
		return c.Client.ListSupplies(ctx)
	})
	return out, err
}

// CreateVehicle passes through and invalidates the vehicle list, so the
// next plate resolution sees the vehicle that was just registered.
func (c *Client) CreateVehicle(ctx context.Context, req *domain.CreateVehicleRequest) (*domain.Vehicle, error) {
	vehicle, err := c.Client.CreateVehicle(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Del(ctx, keyVehicles); err != nil {
		c.log.Warn("Failed to invalidate vehicle cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return vehicle, nil
}

// readThrough wires the cache lookup, the fallback fetch and the cache
// fill for one reference list.
func readThrough[T any](ctx context.Context, c *Client, key string, out *[]T, fetch func() ([]T, error)) error {
	if cachedVal, err := c.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(cachedVal), out); err == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the source.
		_ = c.cache.Del(ctx, key)
	}

	fetched, err := fetch()
	if err != nil {
		return err
	}
	*out = fetched

	if encoded, err := json.Marshal(fetched); err == nil {
		if err := c.cache.Set(ctx, key, string(encoded), c.ttl); err != nil {
			c.log.Debug("Failed to fill reference cache", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return nil
}
