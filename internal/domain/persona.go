package domain

import (
	"strings"
	"time"
)

// Persona - propietario (persona natural)
// La cédula es el identificador nacional, único en todo el sistema
type Persona struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Cedula    string    `json:"cedula"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate verifica la consistencia de los datos de la persona
func (p *Persona) Validate() error {
	if strings.TrimSpace(p.Nombre) == "" || len(p.Nombre) > 255 {
		return ErrInvalidPersonaData
	}
	if strings.TrimSpace(p.Cedula) == "" || len(p.Cedula) > 50 {
		return ErrInvalidPersonaData
	}
	return nil
}
