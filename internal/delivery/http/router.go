package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/icanh/registro-vehiculos/internal/delivery/http/middleware"
	"github.com/icanh/registro-vehiculos/internal/pkg/config"
	"github.com/icanh/registro-vehiculos/internal/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router contiene las dependencias del router HTTP
type Router struct {
	marcaHandler    *MarcaHandler
	personaHandler  *PersonaHandler
	vehiculoHandler *VehiculoHandler
	config          *config.Config
	logger          logger.Logger
}

// NewRouter crea el router HTTP
func NewRouter(
	marcaHandler *MarcaHandler,
	personaHandler *PersonaHandler,
	vehiculoHandler *VehiculoHandler,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		marcaHandler:    marcaHandler,
		personaHandler:  personaHandler,
		vehiculoHandler: vehiculoHandler,
		config:          config,
		logger:          logger,
	}
}

// Setup configura todas las rutas
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware globales
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))
	r.Use(chiMiddleware.StripSlashes)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// Métricas prometheus
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/marcas", func(r chi.Router) {
			r.Get("/", rt.marcaHandler.ListMarcas)
			r.Post("/", rt.marcaHandler.CreateMarca)
			r.Get("/{id}", rt.marcaHandler.GetMarcaByID)
			r.Put("/{id}", rt.marcaHandler.UpdateMarca)
			r.Delete("/{id}", rt.marcaHandler.DeleteMarca)
		})

		r.Route("/personas", func(r chi.Router) {
			r.Get("/", rt.personaHandler.ListPersonas)
			r.Post("/", rt.personaHandler.CreatePersona)
			r.Get("/{id}", rt.personaHandler.GetPersonaByID)
			r.Put("/{id}", rt.personaHandler.UpdatePersona)
			r.Delete("/{id}", rt.personaHandler.DeletePersona)
			r.Get("/{id}/vehiculos", rt.vehiculoHandler.GetVehiculosByPersona)
		})

		r.Route("/vehiculos", func(r chi.Router) {
			r.Get("/", rt.vehiculoHandler.ListVehiculos)
			r.Post("/", rt.vehiculoHandler.CreateVehiculo)
			r.Get("/{id}", rt.vehiculoHandler.GetVehiculoByID)
			r.Put("/{id}", rt.vehiculoHandler.UpdateVehiculo)
			r.Delete("/{id}", rt.vehiculoHandler.DeleteVehiculo)
			r.Post("/{id}/propietarios", rt.vehiculoHandler.AddPropietario)
		})
	})

	return r
}
