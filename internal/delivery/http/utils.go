package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/icanh/registro-vehiculos/internal/domain"
)

// respondJSON envía una respuesta JSON
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"No se pudo serializar la respuesta"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondData envuelve la entidad en la clave "data"
func respondData(w http.ResponseWriter, code int, data interface{}) {
	respondJSON(w, code, map[string]interface{}{
		"data": data,
	})
}

// respondError envía una respuesta de error JSON
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{
		"error": message,
	})
}

// respondDomainError traduce los errores de dominio a códigos HTTP
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMarcaNotFound):
		respondError(w, http.StatusNotFound, "Marca no encontrada.")
	case errors.Is(err, domain.ErrPersonaNotFound):
		respondError(w, http.StatusNotFound, "Persona no encontrada.")
	case errors.Is(err, domain.ErrVehiculoNotFound):
		respondError(w, http.StatusNotFound, "Vehículo no encontrado.")
	case errors.Is(err, domain.ErrMarcaYaExiste):
		respondError(w, http.StatusBadRequest, "Ya existe una marca con ese nombre.")
	case errors.Is(err, domain.ErrCedulaYaExiste):
		respondError(w, http.StatusBadRequest, "Ya existe una persona con esa cédula.")
	case errors.Is(err, domain.ErrPropietarioYaAsignado):
		respondError(w, http.StatusBadRequest, "El propietario ya está asociado a este vehículo.")
	case errors.Is(err, domain.ErrMarcaEnUso):
		respondError(w, http.StatusConflict, "La marca tiene vehículos asociados.")
	case errors.Is(err, domain.ErrPersonaEnUso):
		respondError(w, http.StatusConflict, "La persona tiene vehículos asociados.")
	case errors.Is(err, domain.ErrInvalidMarcaData),
		errors.Is(err, domain.ErrInvalidPersonaData),
		errors.Is(err, domain.ErrInvalidVehiculoData),
		errors.Is(err, domain.ErrInvalidNumeroPuertas):
		respondError(w, http.StatusUnprocessableEntity, "Datos inválidos.")
	default:
		respondError(w, http.StatusInternalServerError, "Error interno del servidor.")
	}
}

// respondValidationError envía un 422 con mensajes por campo
func respondValidationError(w http.ResponseWriter, err error) {
	campos := map[string]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			campos[fe.Field()] = mensajeCampo(fe)
		}
	}

	respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"error":  "Datos inválidos.",
		"campos": campos,
	})
}

// mensajeCampo genera el mensaje de error para una regla incumplida
func mensajeCampo(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio."
	case "max", "lte":
		return "El valor supera el máximo permitido (" + fe.Param() + ")."
	case "min", "gte":
		return "El valor no alcanza el mínimo permitido (" + fe.Param() + ")."
	case "gt":
		return "El valor debe ser mayor que " + fe.Param() + "."
	default:
		return "Valor inválido."
	}
}

// newValidator crea el validador usando los nombres de los tags json,
// así los mensajes por campo usan el nombre del payload y no el del struct
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseIDParam extrae y convierte el parámetro {id} de la ruta
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrBadRequest
	}
	return id, nil
}

// parsePageParams extrae skip y limit de la query string
func parsePageParams(r *http.Request) (skip, limit int) {
	if raw := r.URL.Query().Get("skip"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			skip = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	return skip, limit
}
