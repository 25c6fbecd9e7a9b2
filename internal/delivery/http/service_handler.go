package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lavamax/console/internal/domain"
	"github.com/lavamax/console/internal/pkg/logger"
	"github.com/lavamax/console/internal/usecase/status"
)

// ServiceReader is the slice of the records API the service views need.
type ServiceReader interface {
	ListServices(ctx context.Context) ([]domain.ServiceRecord, error)
	GetService(ctx context.Context, id int) (*domain.ServiceRecord, error)
	UpdateService(ctx context.Context, id int, patch *domain.UpdateServiceRequest) (*domain.ServiceRecord, error)
}

// ServiceHandler serves service records decorated with their derived
// lifecycle stage and duration.
type ServiceHandler struct {
	records ServiceReader
	logger  logger.Logger
}

// NewServiceHandler creates a service handler.
func NewServiceHandler(records ServiceReader, logger logger.Logger) *ServiceHandler {
	return &ServiceHandler{
		records: records,
		logger:  logger,
	}
}

// serviceView is a record plus its derived presentation fields. The stage
// is recomputed on every read, never stored.
type serviceView struct {
	domain.ServiceRecord
	Stage    status.Stage `json:"estado"`
	Duration string       `json:"duracion"`
}

func viewOf(rec domain.ServiceRecord) serviceView {
	return serviceView{
		ServiceRecord: rec,
		Stage:         status.StageOf(&rec),
		Duration:      status.ElapsedOf(&rec).String(),
	}
}

// ListServices returns all services with derived status.
// GET /api/v1/services
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.records.ListServices(r.Context())
	if err != nil {
		h.logger.Error("Failed to list services", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusBadGateway, "Failed to list services")
		return
	}

	views := make([]serviceView, 0, len(services))
	for _, rec := range services {
		views = append(views, viewOf(rec))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    views,
	})
}

// GetService returns one service with derived status.
// GET /api/v1/services/{id}
func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, ok := h.serviceID(w, r)
	if !ok {
		return
	}

	rec, err := h.records.GetService(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			respondError(w, http.StatusNotFound, "Service not found")
			return
		}
		h.logger.Error("Failed to get service", map[string]interface{}{
			"service_id": id,
			"error":      err.Error(),
		})
		respondError(w, http.StatusBadGateway, "Failed to get service")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    viewOf(*rec),
	})
}

// UpdateService patches a service (assign the washer, set the wash start
// or delivery time, adjust observations) and returns the updated view.
// PATCH /api/v1/services/{id}
func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := h.serviceID(w, r)
	if !ok {
		return
	}

	var patch domain.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.records.UpdateService(r.Context(), id, &patch)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			respondError(w, http.StatusNotFound, "Service not found")
			return
		}
		h.logger.Error("Failed to update service", map[string]interface{}{
			"service_id": id,
			"error":      err.Error(),
		})
		respondError(w, http.StatusBadGateway, "Failed to update service")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    viewOf(*rec),
	})
}

func (h *ServiceHandler) serviceID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid service ID")
		return 0, false
	}
	return id, true
}
