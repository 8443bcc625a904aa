package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/icanh/registro-vehiculos/internal/domain"
	"github.com/icanh/registro-vehiculos/internal/pkg/logger"
	"github.com/icanh/registro-vehiculos/internal/usecase/marca"
)

// MarcaService define la interfaz del servicio de marcas
type MarcaService interface {
	CreateMarca(ctx context.Context, req *marca.CreateMarcaRequest) (*domain.Marca, error)
	ListMarcas(ctx context.Context, skip, limit int) ([]*domain.Marca, error)
	GetMarcaByID(ctx context.Context, id int64) (*domain.Marca, error)
	UpdateMarca(ctx context.Context, id int64, req *marca.UpdateMarcaRequest) (*domain.Marca, error)
	DeleteMarca(ctx context.Context, id int64) error
}

// MarcaHandler atiende las peticiones de marcas
type MarcaHandler struct {
	marcaService MarcaService
	validator    *validator.Validate
	logger       logger.Logger
}

// NewMarcaHandler crea el handler de marcas
func NewMarcaHandler(marcaService MarcaService, logger logger.Logger) *MarcaHandler {
	return &MarcaHandler{
		marcaService: marcaService,
		validator:    newValidator(),
		logger:       logger,
	}
}

// ListMarcas devuelve una página de marcas
// GET /api/marcas?skip=&limit=
func (h *MarcaHandler) ListMarcas(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePageParams(r)

	marcas, err := h.marcaService.ListMarcas(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Failed to list marcas", map[string]interface{}{
			"error": err.Error(),
		})
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, marcas)
}

// CreateMarca crea una nueva marca
// POST /api/marcas
func (h *MarcaHandler) CreateMarca(w http.ResponseWriter, r *http.Request) {
	var req marca.CreateMarcaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Cuerpo de la petición inválido.")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	m, err := h.marcaService.CreateMarca(r.Context(), &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusCreated, m)
}

// GetMarcaByID devuelve una marca
// GET /api/marcas/{id}
func (h *MarcaHandler) GetMarcaByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID de marca inválido.")
		return
	}

	m, err := h.marcaService.GetMarcaByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, m)
}

// UpdateMarca aplica una actualización parcial
// PUT /api/marcas/{id}
func (h *MarcaHandler) UpdateMarca(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID de marca inválido.")
		return
	}

	var req marca.UpdateMarcaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Cuerpo de la petición inválido.")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	m, err := h.marcaService.UpdateMarca(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, m)
}

// DeleteMarca elimina una marca sin vehículos asociados
// DELETE /api/marcas/{id}
func (h *MarcaHandler) DeleteMarca(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID de marca inválido.")
		return
	}

	if err := h.marcaService.DeleteMarca(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
