package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lavamax/console/internal/domain"
	"github.com/lavamax/console/internal/pkg/logger"
	"github.com/lavamax/console/internal/usecase/refdata"
	"github.com/lavamax/console/internal/usecase/submission"
	"github.com/lavamax/console/internal/usecase/wizard"
)

// ReferenceLoader loads the wizard's lookup sets.
type ReferenceLoader interface {
	Load(ctx context.Context) *refdata.Bundle
}

// WizardHandler drives wizard sessions over HTTP for the console UI.
type WizardHandler struct {
	loader    ReferenceLoader
	store     *wizard.Store
	submitter wizard.Submitter
	logger    logger.Logger
}

// NewWizardHandler creates a wizard handler.
func NewWizardHandler(loader ReferenceLoader, store *wizard.Store, submitter wizard.Submitter, logger logger.Logger) *WizardHandler {
	return &WizardHandler{
		loader:    loader,
		store:     store,
		submitter: submitter,
		logger:    logger,
	}
}

// draftPatch carries a partial draft update. Nil fields are untouched.
type draftPatch struct {
	Plate             *string  `json:"placa,omitempty"`
	VehicleTypeID     *int     `json:"id_tipo_vehiculo,omitempty"`
	ReceivingEmployee *int     `json:"id_empleado_recibe,omitempty"`
	WashingEmployee   *int     `json:"id_empleado_lava,omitempty"`
	WashTypeID        *int     `json:"id_tipo_lavado,omitempty"`
	Price             *float64 `json:"precio,omitempty"`
}

// addSupplyRequest is one supply consumption line.
type addSupplyRequest struct {
	SupplyID int `json:"id_insumo"`
	Quantity int `json:"cantidad"`
}

// StartSession opens a new wizard session.
// POST /api/v1/wizard
func (h *WizardHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	bundle := h.loader.Load(r.Context())

	controller := wizard.NewController(bundle, h.logger)
	session := h.store.Put(controller)

	h.logger.Info("Wizard session started", map[string]interface{}{
		"session_id": session.ID,
		"partial":    bundle.Partial(),
	})

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":   true,
		"data":      sessionState(session),
		"reference": bundle,
	})
}

// GetSession returns the current stage and draft.
// GET /api/v1/wizard/{id}
func (h *WizardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sessionState(session),
	})
}

// PatchDraft applies field updates to the draft. Setting the plate
// re-resolves the vehicle; setting the wash type re-proposes the catalog
// price; a price sent after that overrides the proposal.
// PATCH /api/v1/wizard/{id}/draft
func (h *WizardHandler) PatchDraft(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var patch draftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	controller := session.Controller

	if patch.Plate != nil {
		controller.SetPlate(*patch.Plate)
	}
	if patch.VehicleTypeID != nil {
		if err := controller.SetVehicleType(*patch.VehicleTypeID); err != nil {
			h.respondWizardError(w, err)
			return
		}
	}
	if patch.ReceivingEmployee != nil || patch.WashingEmployee != nil {
		draft := controller.Draft()
		receiving, washing := draft.ReceivingEmployee, draft.WashingEmployee
		if patch.ReceivingEmployee != nil {
			receiving = *patch.ReceivingEmployee
		}
		if patch.WashingEmployee != nil {
			washing = *patch.WashingEmployee
		}
		controller.SetEmployees(receiving, washing)
	}
	if patch.WashTypeID != nil {
		controller.SetWashType(*patch.WashTypeID)
	}
	if patch.Price != nil {
		controller.SetPrice(*patch.Price)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sessionState(session),
	})
}

// Next advances the wizard one stage.
// POST /api/v1/wizard/{id}/next
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := session.Controller.Next(); err != nil {
		h.respondWizardError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sessionState(session),
	})
}

// Back returns the wizard to the previous stage.
// POST /api/v1/wizard/{id}/back
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := session.Controller.Back(); err != nil {
		h.respondWizardError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sessionState(session),
	})
}

// AddSupply adds (or merges) one supply consumption line.
// POST /api/v1/wizard/{id}/supplies
func (h *WizardHandler) AddSupply(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req addSupplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := session.Controller.AddSupply(req.SupplyID, req.Quantity); err != nil {
		h.respondWizardError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sessionState(session),
	})
}

// RemoveSupply removes a supply line; removing an absent one is a no-op.
// DELETE /api/v1/wizard/{id}/supplies/{supplyID}
func (h *WizardHandler) RemoveSupply(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	supplyID, err := strconv.Atoi(chi.URLParam(r, "supplyID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid supply ID")
		return
	}

	session.Controller.RemoveSupply(supplyID)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    sessionState(session),
	})
}

// Submit performs the final two-step creation. On success the session is
// torn down; on failure it stays at the confirm stage for a retry.
// POST /api/v1/wizard/{id}/submit
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	record, err := session.Controller.Submit(r.Context(), h.submitter)
	if err != nil {
		h.respondWizardError(w, err)
		return
	}

	h.store.Delete(session.ID)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    record,
	})
}

// session resolves the {id} route param to a live session, answering the
// error response itself when it cannot.
func (h *WizardHandler) session(w http.ResponseWriter, r *http.Request) (*wizard.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID")
		return nil, false
	}

	session, err := h.store.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Wizard session not found")
		return nil, false
	}
	return session, true
}

// respondWizardError maps wizard and submission errors onto HTTP statuses.
func (h *WizardHandler) respondWizardError(w http.ResponseWriter, err error) {
	var stepErr *submission.StepError
	if errors.As(err, &stepErr) {
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"success": false,
			"error":   stepErr.Error(),
			"step":    string(stepErr.Step),
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrStageValidation),
		errors.Is(err, domain.ErrInvalidSelection):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNoForwardStage),
		errors.Is(err, domain.ErrNoBackwardStage),
		errors.Is(err, domain.ErrSubmitNotAllowed):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("Wizard request failed", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// sessionState is the wizard state exposed to the UI.
func sessionState(session *wizard.Session) map[string]interface{} {
	draft := session.Controller.Draft()
	return map[string]interface{}{
		"session_id": session.ID,
		"stage":      session.Controller.Stage(),
		"draft":      draft,
		"insumos":    draft.SupplyList(),
	}
}
