package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/icanh/registro-vehiculos/internal/domain"
	"github.com/icanh/registro-vehiculos/internal/pkg/logger"
	"github.com/icanh/registro-vehiculos/internal/usecase/vehiculo"
)

// VehiculoService define la interfaz del servicio de vehículos
type VehiculoService interface {
	CreateVehiculo(ctx context.Context, req *vehiculo.CreateVehiculoRequest) (*domain.Vehiculo, error)
	ListVehiculos(ctx context.Context, skip, limit int) ([]*domain.Vehiculo, error)
	GetVehiculoByID(ctx context.Context, id int64) (*domain.Vehiculo, error)
	GetVehiculosByPersona(ctx context.Context, personaID int64) ([]*domain.Vehiculo, error)
	UpdateVehiculo(ctx context.Context, id int64, req *vehiculo.UpdateVehiculoRequest) (*domain.Vehiculo, error)
	DeleteVehiculo(ctx context.Context, id int64) error
	AddPropietario(ctx context.Context, vehiculoID, personaID int64) (*domain.Vehiculo, error)
}

// VehiculoHandler atiende las peticiones de vehículos y de propietarios
type VehiculoHandler struct {
	vehiculoService VehiculoService
	validator       *validator.Validate
	logger          logger.Logger
}

// NewVehiculoHandler crea el handler de vehículos
func NewVehiculoHandler(vehiculoService VehiculoService, logger logger.Logger) *VehiculoHandler {
	return &VehiculoHandler{
		vehiculoService: vehiculoService,
		validator:       newValidator(),
		logger:          logger,
	}
}

// ListVehiculos devuelve una página de vehículos con marca y propietarios
// GET /api/vehiculos?skip=&limit=
func (h *VehiculoHandler) ListVehiculos(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePageParams(r)

	vehiculos, err := h.vehiculoService.ListVehiculos(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Failed to list vehiculos", map[string]interface{}{
			"error": err.Error(),
		})
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, vehiculos)
}

// CreateVehiculo crea un nuevo vehículo
// POST /api/vehiculos
func (h *VehiculoHandler) CreateVehiculo(w http.ResponseWriter, r *http.Request) {
	var req vehiculo.CreateVehiculoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Cuerpo de la petición inválido.")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	v, err := h.vehiculoService.CreateVehiculo(r.Context(), &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusCreated, v)
}

// GetVehiculoByID devuelve un vehículo con marca y propietarios
// GET /api/vehiculos/{id}
func (h *VehiculoHandler) GetVehiculoByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID de vehículo inválido.")
		return
	}

	v, err := h.vehiculoService.GetVehiculoByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, v)
}

// GetVehiculosByPersona devuelve los vehículos de una persona
// GET /api/personas/{id}/vehiculos
func (h *VehiculoHandler) GetVehiculosByPersona(w http.ResponseWriter, r *http.Request) {
	personaID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID de persona inválido.")
		return
	}

	vehiculos, err := h.vehiculoService.GetVehiculosByPersona(r.Context(), personaID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, vehiculos)
}

// UpdateVehiculo aplica una actualización parcial
// PUT /api/vehiculos/{id}
func (h *VehiculoHandler) UpdateVehiculo(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID de vehículo inválido.")
		return
	}

	var req vehiculo.UpdateVehiculoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Cuerpo de la petición inválido.")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	v, err := h.vehiculoService.UpdateVehiculo(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, v)
}

// DeleteVehiculo elimina un vehículo
// DELETE /api/vehiculos/{id}
func (h *VehiculoHandler) DeleteVehiculo(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID de vehículo inválido.")
		return
	}

	if err := h.vehiculoService.DeleteVehiculo(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddPropietario asocia una persona como propietaria del vehículo
// POST /api/vehiculos/{id}/propietarios
func (h *VehiculoHandler) AddPropietario(w http.ResponseWriter, r *http.Request) {
	vehiculoID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "ID de vehículo inválido.")
		return
	}

	var req vehiculo.AsignarPropietarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Cuerpo de la petición inválido.")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	v, err := h.vehiculoService.AddPropietario(r.Context(), vehiculoID, req.PersonaID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondData(w, http.StatusCreated, v)
}
