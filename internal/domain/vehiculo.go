package domain

import (
	"strings"
	"time"
)

// Límites del número de puertas aceptado para un vehículo
const (
	MinNumeroPuertas = 2
	MaxNumeroPuertas = 10
)

// Vehiculo - vehículo registrado
// IMPORTANTE: marca_id SIEMPRE referencia una marca existente (NOT NULL + FK)
// La propiedad es una relación many-to-many con Persona vía vehiculo_propietario,
// con a lo sumo una fila por cada par (vehiculo, persona)
type Vehiculo struct {
	ID            int64     `json:"id"`
	Modelo        string    `json:"modelo"`
	MarcaID       int64     `json:"marca_id"`
	NumeroPuertas int       `json:"numero_puertas"`
	Color         string    `json:"color"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Ids de propietarios, cargados junto con el vehículo
	PropietariosIDs []int64 `json:"propietarios_ids"`

	// Datos relacionados (no almacenados en la tabla, ensamblados por el servicio)
	Marca        *Marca     `json:"marca,omitempty"`
	Propietarios []*Persona `json:"propietarios,omitempty"`
}

// Validate verifica la consistencia de los datos del vehículo
func (v *Vehiculo) Validate() error {
	if strings.TrimSpace(v.Modelo) == "" || len(v.Modelo) > 255 {
		return ErrInvalidVehiculoData
	}
	if v.MarcaID <= 0 {
		return ErrInvalidVehiculoData
	}
	if v.NumeroPuertas < MinNumeroPuertas || v.NumeroPuertas > MaxNumeroPuertas {
		return ErrInvalidNumeroPuertas
	}
	if strings.TrimSpace(v.Color) == "" || len(v.Color) > 255 {
		return ErrInvalidVehiculoData
	}
	return nil
}

// TienePropietario indica si la persona ya está asociada al vehículo
func (v *Vehiculo) TienePropietario(personaID int64) bool {
	for _, id := range v.PropietariosIDs {
		if id == personaID {
			return true
		}
	}
	return false
}
