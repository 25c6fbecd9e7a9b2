package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lavamax/console/internal/delivery/http/middleware"
	"github.com/lavamax/console/internal/pkg/config"
	"github.com/lavamax/console/internal/pkg/logger"
)

// Router holds the dependencies of the HTTP router.
type Router struct {
	wizardHandler  *WizardHandler
	serviceHandler *ServiceHandler
	config         *config.Config
	logger         logger.Logger
}

// NewRouter creates the HTTP router.
func NewRouter(
	wizardHandler *WizardHandler,
	serviceHandler *ServiceHandler,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		wizardHandler:  wizardHandler,
		serviceHandler: serviceHandler,
		config:         config,
		logger:         logger,
	}
}

// Setup wires all routes.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Wizard sessions
		r.Route("/wizard", func(r chi.Router) {
			r.Post("/", rt.wizardHandler.StartSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.wizardHandler.GetSession)
				r.Patch("/draft", rt.wizardHandler.PatchDraft)
				r.Post("/next", rt.wizardHandler.Next)
				r.Post("/back", rt.wizardHandler.Back)
				r.Post("/supplies", rt.wizardHandler.AddSupply)
				r.Delete("/supplies/{supplyID}", rt.wizardHandler.RemoveSupply)
				r.Post("/submit", rt.wizardHandler.Submit)
			})
		})

		// Service views
		r.Route("/services", func(r chi.Router) {
			r.Get("/", rt.serviceHandler.ListServices)
			r.Get("/{id}", rt.serviceHandler.GetService)
			r.Patch("/{id}", rt.serviceHandler.UpdateService)
		})
	})

	return r
}
