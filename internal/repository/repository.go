package repository

import (
	"context"

	"github.com/icanh/registro-vehiculos/internal/domain"
)

// MarcaRepository define los métodos de persistencia de marcas
type MarcaRepository interface {
	// Create inserta una nueva marca y asigna su ID
	Create(ctx context.Context, marca *domain.Marca) error

	// GetByID devuelve la marca por ID
	GetByID(ctx context.Context, id int64) (*domain.Marca, error)

	// GetByNombre devuelve la marca por su nombre (clave natural)
	GetByNombre(ctx context.Context, nombre string) (*domain.Marca, error)

	// Update actualiza los datos de la marca
	Update(ctx context.Context, marca *domain.Marca) error

	// Delete elimina la marca (borrado físico)
	Delete(ctx context.Context, id int64) error

	// List devuelve marcas paginadas, ordenadas por ID
	List(ctx context.Context, limit, offset int) ([]*domain.Marca, error)

	// CountVehiculos devuelve cuántos vehículos referencian la marca
	CountVehiculos(ctx context.Context, marcaID int64) (int64, error)
}

// PersonaRepository define los métodos de persistencia de personas
type PersonaRepository interface {
	// Create inserta una nueva persona y asigna su ID
	Create(ctx context.Context, persona *domain.Persona) error

	// GetByID devuelve la persona por ID
	GetByID(ctx context.Context, id int64) (*domain.Persona, error)

	// GetByCedula devuelve la persona por cédula (clave natural)
	GetByCedula(ctx context.Context, cedula string) (*domain.Persona, error)

	// GetByIDs devuelve las personas cuyos IDs estén en la lista
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Persona, error)

	// Update actualiza los datos de la persona
	Update(ctx context.Context, persona *domain.Persona) error

	// Delete elimina la persona (borrado físico)
	Delete(ctx context.Context, id int64) error

	// List devuelve personas paginadas, ordenadas por ID
	List(ctx context.Context, limit, offset int) ([]*domain.Persona, error)

	// CountVehiculos devuelve cuántos vehículos siguen asociados a la persona
	CountVehiculos(ctx context.Context, personaID int64) (int64, error)
}

// VehiculoRepository define los métodos de persistencia de vehículos
// y de la relación vehiculo-propietario
type VehiculoRepository interface {
	// Create inserta un nuevo vehículo y asigna su ID
	Create(ctx context.Context, vehiculo *domain.Vehiculo) error

	// GetByID devuelve el vehículo por ID, con sus PropietariosIDs cargados
	GetByID(ctx context.Context, id int64) (*domain.Vehiculo, error)

	// GetByPersonaID devuelve todos los vehículos asociados a la persona
	GetByPersonaID(ctx context.Context, personaID int64) ([]*domain.Vehiculo, error)

	// Update actualiza los datos escalares del vehículo
	Update(ctx context.Context, vehiculo *domain.Vehiculo) error

	// UpdateWithPropietarios actualiza los datos escalares y reemplaza el
	// conjunto completo de propietarios en una única transacción
	UpdateWithPropietarios(ctx context.Context, vehiculo *domain.Vehiculo, personaIDs []int64) error

	// Delete elimina el vehículo; las filas de vehiculo_propietario caen en cascada
	Delete(ctx context.Context, id int64) error

	// List devuelve vehículos paginados, ordenados por ID, con PropietariosIDs
	List(ctx context.Context, limit, offset int) ([]*domain.Vehiculo, error)

	// AddPropietario inserta la relación (vehiculo, persona)
	// Devuelve domain.ErrPropietarioYaAsignado si el par ya existe
	AddPropietario(ctx context.Context, vehiculoID, personaID int64) error
}
