package domain

import (
	"strings"
	"time"
)

// Marca - marca de vehículo (fabricante)
// El nombre es único en todo el sistema (comparación exacta, sensible a mayúsculas)
type Marca struct {
	ID          int64     `json:"id"`
	NombreMarca string    `json:"nombre_marca"`
	Pais        string    `json:"pais"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate verifica la consistencia de los datos de la marca
func (m *Marca) Validate() error {
	if strings.TrimSpace(m.NombreMarca) == "" {
		return ErrInvalidMarcaData
	}
	if strings.TrimSpace(m.Pais) == "" {
		return ErrInvalidMarcaData
	}
	if len(m.NombreMarca) > 255 || len(m.Pais) > 255 {
		return ErrInvalidMarcaData
	}
	return nil
}
