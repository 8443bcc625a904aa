package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/icanh/registro-vehiculos/internal/domain"
	"github.com/icanh/registro-vehiculos/internal/pkg/logger"
	"github.com/icanh/registro-vehiculos/internal/usecase/persona"
)

// PersonaService define la interfaz del servicio de personas
type PersonaService interface {
	CreatePersona(ctx context.Context, req *persona.CreatePersonaRequest) (*domain.Persona, error)
	ListPersonas(ctx context.Context, skip, limit int) ([]*domain.Persona, error)
	GetPersonaByID(ctx context.Context, id int64) (*domain.Persona, error)
	UpdatePersona(ctx context.Context, id int64, req *persona.UpdatePersonaRequest) (*domain.Persona, error)
	DeletePersona(ctx context.Context, id int64) error
}

// PersonaHandler atiende las peticiones de personas
type PersonaHandler struct {
	personaService PersonaService
	validator      *validator.Validate
	logger         logger.Logger
}

// NewPersonaHandler crea el handler de personas
func NewPersonaHandler(personaService PersonaService, logger logger.Logger) *PersonaHandler {
	return &PersonaHandler{
		personaService: personaService,
		validator:      newValidator(),
		logger:         logger,
	}
}

// ListPersonas devuelve una página de personas
// GET /api/personas?skip=&limit=
func (h *PersonaHandler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePageParams(r)

	personas, err := h.personaService.ListPersonas(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Failed to list personas", map[string]interface{}{
			"error": err.Error(),
		})
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, personas)
}

// CreatePersona crea una nueva persona
// POST /api/personas
func (h *PersonaHandler) CreatePersona(w http.ResponseWriter, r *http.Request) {
	var req persona.CreatePersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Cuerpo de la petición inválido.")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	p, err := h.personaService.CreatePersona(r.Context(), &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusCreated, p)
}

// GetPersonaByID devuelve una persona
// GET /api/personas/{id}
func (h *PersonaHandler) GetPersonaByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID de persona inválido.")
		return
	}

	p, err := h.personaService.GetPersonaByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, p)
}

// UpdatePersona aplica una actualización parcial
// PUT /api/personas/{id}
func (h *PersonaHandler) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID de persona inválido.")
		return
	}

	var req persona.UpdatePersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Cuerpo de la petición inválido.")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	p, err := h.personaService.UpdatePersona(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, p)
}

// DeletePersona elimina una persona sin vehículos asociados
// DELETE /api/personas/{id}
func (h *PersonaHandler) DeletePersona(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID de persona inválido.")
		return
	}

	if err := h.personaService.DeletePersona(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
