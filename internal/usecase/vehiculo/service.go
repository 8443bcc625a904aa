package vehiculo

import (
	"context"
	"errors"
	"fmt"

	"github.com/icanh/registro-vehiculos/internal/domain"
	"github.com/icanh/registro-vehiculos/internal/pkg/logger"
	"github.com/icanh/registro-vehiculos/internal/repository"
	"github.com/icanh/registro-vehiculos/internal/usecase/marca"
)

// CreateVehiculoRequest - solicitud de creación de vehículo
type CreateVehiculoRequest struct {
	Modelo        string `json:"modelo" validate:"required,max=255"`
	MarcaID       int64  `json:"marca_id" validate:"required,gt=0"`
	NumeroPuertas int    `json:"numero_puertas" validate:"required,gte=2,lte=10"`
	Color         string `json:"color" validate:"required,max=255"`
}

// UpdateVehiculoRequest - actualización parcial: solo los campos presentes se aplican
// PropietariosIDs reemplaza el conjunto completo de propietarios
type UpdateVehiculoRequest struct {
	Modelo          *string  `json:"modelo" validate:"omitempty,min=1,max=255"`
	MarcaID         *int64   `json:"marca_id" validate:"omitempty,gt=0"`
	NumeroPuertas   *int     `json:"numero_puertas" validate:"omitempty,gte=2,lte=10"`
	Color           *string  `json:"color" validate:"omitempty,min=1,max=255"`
	PropietariosIDs *[]int64 `json:"propietarios_ids" validate:"omitempty,dive,gt=0"`
}

// AsignarPropietarioRequest - solicitud de asignación de propietario
type AsignarPropietarioRequest struct {
	PersonaID int64 `json:"persona_id" validate:"required,gt=0"`
}

// Service contiene la lógica de negocio de vehículos, incluida la relación
// many-to-many con personas
type Service struct {
	vehiculoRepo repository.VehiculoRepository
	marcaRepo    repository.MarcaRepository
	personaRepo  repository.PersonaRepository
	logger       logger.Logger
}

// NewService crea una nueva instancia de VehiculoService
func NewService(
	vehiculoRepo repository.VehiculoRepository,
	marcaRepo repository.MarcaRepository,
	personaRepo repository.PersonaRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		vehiculoRepo: vehiculoRepo,
		marcaRepo:    marcaRepo,
		personaRepo:  personaRepo,
		logger:       logger,
	}
}

// CreateVehiculo crea un nuevo vehículo
// Falla con domain.ErrMarcaNotFound si la marca referenciada no existe
func (s *Service) CreateVehiculo(ctx context.Context, req *CreateVehiculoRequest) (*domain.Vehiculo, error) {
	s.logger.Info("Creating new vehiculo", map[string]interface{}{
		"modelo":   req.Modelo,
		"marca_id": req.MarcaID,
	})

	if _, err := s.marcaRepo.GetByID(ctx, req.MarcaID); err != nil {
		if errors.Is(err, domain.ErrMarcaNotFound) {
			return nil, domain.ErrMarcaNotFound
		}
		return nil, fmt.Errorf("failed to get marca: %w", err)
	}

	vehiculo := &domain.Vehiculo{
		Modelo:        req.Modelo,
		MarcaID:       req.MarcaID,
		NumeroPuertas: req.NumeroPuertas,
		Color:         req.Color,
	}

	if err := vehiculo.Validate(); err != nil {
		return nil, err
	}

	if err := s.vehiculoRepo.Create(ctx, vehiculo); err != nil {
		if errors.Is(err, domain.ErrMarcaNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to create vehiculo", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create vehiculo: %w", err)
	}

	s.logger.Info("Vehiculo created successfully", map[string]interface{}{
		"vehiculo_id": vehiculo.ID,
	})

	return s.ensamblar(ctx, vehiculo)
}

// ListVehiculos devuelve una página de vehículos con marca y propietarios
// ensamblados, en orden estable por ID
func (s *Service) ListVehiculos(ctx context.Context, skip, limit int) ([]*domain.Vehiculo, error) {
	skip, limit = marca.NormalizePage(skip, limit)

	vehiculos, err := s.vehiculoRepo.List(ctx, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehiculos: %w", err)
	}

	return s.ensamblarLista(ctx, vehiculos)
}

// GetVehiculoByID devuelve el vehículo con marca y propietarios ensamblados
func (s *Service) GetVehiculoByID(ctx context.Context, id int64) (*domain.Vehiculo, error) {
	vehiculo, err := s.vehiculoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.ensamblar(ctx, vehiculo)
}

// GetVehiculosByPersona devuelve los vehículos asociados a la persona
// Falla con domain.ErrPersonaNotFound si la persona no existe
func (s *Service) GetVehiculosByPersona(ctx context.Context, personaID int64) ([]*domain.Vehiculo, error) {
	if _, err := s.personaRepo.GetByID(ctx, personaID); err != nil {
		return nil, err
	}

	vehiculos, err := s.vehiculoRepo.GetByPersonaID(ctx, personaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehiculos by persona: %w", err)
	}

	return s.ensamblarLista(ctx, vehiculos)
}

// UpdateVehiculo aplica una actualización parcial
// Si se cambia la marca, verifica que exista; si vienen propietarios_ids,
// reemplaza el conjunto completo tras verificar cada persona
func (s *Service) UpdateVehiculo(ctx context.Context, id int64, req *UpdateVehiculoRequest) (*domain.Vehiculo, error) {
	vehiculo, err := s.vehiculoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MarcaID != nil && *req.MarcaID != vehiculo.MarcaID {
		if _, err := s.marcaRepo.GetByID(ctx, *req.MarcaID); err != nil {
			if errors.Is(err, domain.ErrMarcaNotFound) {
				return nil, domain.ErrMarcaNotFound
			}
			return nil, fmt.Errorf("failed to get marca: %w", err)
		}
		vehiculo.MarcaID = *req.MarcaID
	}

	// Toda verificación ocurre antes del primer write: un propietario
	// inexistente no puede dejar los campos escalares ya cambiados
	if req.PropietariosIDs != nil {
		for _, personaID := range *req.PropietariosIDs {
			if _, err := s.personaRepo.GetByID(ctx, personaID); err != nil {
				return nil, err
			}
		}
	}

	if req.Modelo != nil {
		vehiculo.Modelo = *req.Modelo
	}
	if req.NumeroPuertas != nil {
		vehiculo.NumeroPuertas = *req.NumeroPuertas
	}
	if req.Color != nil {
		vehiculo.Color = *req.Color
	}

	if err := vehiculo.Validate(); err != nil {
		return nil, err
	}

	if req.PropietariosIDs != nil {
		// Escalares y conjunto de propietarios en una sola transacción
		if err := s.vehiculoRepo.UpdateWithPropietarios(ctx, vehiculo, *req.PropietariosIDs); err != nil {
			if errors.Is(err, domain.ErrVehiculoNotFound) || errors.Is(err, domain.ErrMarcaNotFound) {
				return nil, err
			}
			s.logger.Error("Failed to update vehiculo", map[string]interface{}{
				"vehiculo_id": id,
				"error":       err.Error(),
			})
			return nil, fmt.Errorf("failed to update vehiculo: %w", err)
		}

		// Releer para devolver la lista de propietarios ya actualizada
		vehiculo, err = s.vehiculoRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
	} else if err := s.vehiculoRepo.Update(ctx, vehiculo); err != nil {
		if errors.Is(err, domain.ErrVehiculoNotFound) || errors.Is(err, domain.ErrMarcaNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to update vehiculo", map[string]interface{}{
			"vehiculo_id": id,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("failed to update vehiculo: %w", err)
	}

	return s.ensamblar(ctx, vehiculo)
}

// DeleteVehiculo elimina el vehículo y sus relaciones de propiedad
func (s *Service) DeleteVehiculo(ctx context.Context, id int64) error {
	if err := s.vehiculoRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Vehiculo deleted", map[string]interface{}{
		"vehiculo_id": id,
	})

	return nil
}

// AddPropietario asocia una persona al vehículo
// Falla con domain.ErrPropietarioYaAsignado si el par ya existe
func (s *Service) AddPropietario(ctx context.Context, vehiculoID, personaID int64) (*domain.Vehiculo, error) {
	vehiculo, err := s.vehiculoRepo.GetByID(ctx, vehiculoID)
	if err != nil {
		return nil, err
	}

	if _, err := s.personaRepo.GetByID(ctx, personaID); err != nil {
		return nil, err
	}

	// Verificación rápida; la PK compuesta del join respalda la carrera
	if vehiculo.TienePropietario(personaID) {
		s.logger.Warn("Propietario already assigned", map[string]interface{}{
			"vehiculo_id": vehiculoID,
			"persona_id":  personaID,
		})
		return nil, domain.ErrPropietarioYaAsignado
	}

	if err := s.vehiculoRepo.AddPropietario(ctx, vehiculoID, personaID); err != nil {
		if errors.Is(err, domain.ErrPropietarioYaAsignado) {
			return nil, err
		}
		s.logger.Error("Failed to add propietario", map[string]interface{}{
			"vehiculo_id": vehiculoID,
			"persona_id":  personaID,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("failed to add propietario: %w", err)
	}

	s.logger.Info("Propietario assigned", map[string]interface{}{
		"vehiculo_id": vehiculoID,
		"persona_id":  personaID,
	})

	// Releer para devolver la lista de propietarios ya actualizada
	vehiculo, err = s.vehiculoRepo.GetByID(ctx, vehiculoID)
	if err != nil {
		return nil, err
	}

	return s.ensamblar(ctx, vehiculo)
}

// ensamblar completa el vehículo con su marca y sus propietarios.
// El ensamblado ocurre aquí y no en la serialización: la capa de entrega
// nunca dispara consultas
func (s *Service) ensamblar(ctx context.Context, vehiculo *domain.Vehiculo) (*domain.Vehiculo, error) {
	m, err := s.marcaRepo.GetByID(ctx, vehiculo.MarcaID)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble marca for vehiculo %d: %w", vehiculo.ID, err)
	}
	vehiculo.Marca = m

	propietarios, err := s.personaRepo.GetByIDs(ctx, vehiculo.PropietariosIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble propietarios for vehiculo %d: %w", vehiculo.ID, err)
	}
	vehiculo.Propietarios = propietarios

	return vehiculo, nil
}

func (s *Service) ensamblarLista(ctx context.Context, vehiculos []*domain.Vehiculo) ([]*domain.Vehiculo, error) {
	if vehiculos == nil {
		return []*domain.Vehiculo{}, nil
	}

	for _, v := range vehiculos {
		if _, err := s.ensamblar(ctx, v); err != nil {
			return nil, err
		}
	}

	return vehiculos, nil
}
