package domain

import "errors"

// Errores de dominio - usados en todas las capas de la aplicación

// Marca errors
var (
	ErrMarcaNotFound    = errors.New("marca not found")
	ErrMarcaYaExiste    = errors.New("marca with that name already exists")
	ErrMarcaEnUso       = errors.New("marca is referenced by vehicles")
	ErrInvalidMarcaData = errors.New("invalid marca data")
)

// Persona errors
var (
	ErrPersonaNotFound    = errors.New("persona not found")
	ErrCedulaYaExiste     = errors.New("persona with that cedula already exists")
	ErrPersonaEnUso       = errors.New("persona still owns vehicles")
	ErrInvalidPersonaData = errors.New("invalid persona data")
)

// Vehiculo errors
var (
	ErrVehiculoNotFound     = errors.New("vehiculo not found")
	ErrInvalidVehiculoData  = errors.New("invalid vehiculo data")
	ErrInvalidNumeroPuertas = errors.New("numero de puertas out of range")
)

// Propietario (vehiculo-persona) errors
var (
	ErrPropietarioYaAsignado = errors.New("propietario already assigned to vehiculo")
)

// General errors
var (
	ErrBadRequest = errors.New("bad request")
)
