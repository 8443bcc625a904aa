package persona

import (
	"context"
	"errors"
	"fmt"

	"github.com/icanh/registro-vehiculos/internal/domain"
	"github.com/icanh/registro-vehiculos/internal/pkg/logger"
	"github.com/icanh/registro-vehiculos/internal/repository"
	"github.com/icanh/registro-vehiculos/internal/usecase/marca"
)

// CreatePersonaRequest - solicitud de creación de persona
type CreatePersonaRequest struct {
	Nombre string `json:"nombre" validate:"required,max=255"`
	Cedula string `json:"cedula" validate:"required,max=50"`
}

// UpdatePersonaRequest - actualización parcial: solo los campos presentes se aplican
type UpdatePersonaRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=1,max=255"`
	Cedula *string `json:"cedula" validate:"omitempty,min=1,max=50"`
}

// Service contiene la lógica de negocio de personas
type Service struct {
	personaRepo repository.PersonaRepository
	logger      logger.Logger
}

// NewService crea una nueva instancia de PersonaService
func NewService(personaRepo repository.PersonaRepository, logger logger.Logger) *Service {
	return &Service{
		personaRepo: personaRepo,
		logger:      logger,
	}
}

// CreatePersona crea una nueva persona
// Falla con domain.ErrCedulaYaExiste si la cédula ya está registrada
func (s *Service) CreatePersona(ctx context.Context, req *CreatePersonaRequest) (*domain.Persona, error) {
	s.logger.Info("Creating new persona", map[string]interface{}{
		"cedula": req.Cedula,
	})

	existing, err := s.personaRepo.GetByCedula(ctx, req.Cedula)
	if err != nil && !errors.Is(err, domain.ErrPersonaNotFound) {
		return nil, fmt.Errorf("failed to check existing persona: %w", err)
	}

	if existing != nil {
		s.logger.Warn("Persona already exists", map[string]interface{}{
			"cedula": req.Cedula,
		})
		return nil, domain.ErrCedulaYaExiste
	}

	persona := &domain.Persona{
		Nombre: req.Nombre,
		Cedula: req.Cedula,
	}

	if err := persona.Validate(); err != nil {
		return nil, err
	}

	if err := s.personaRepo.Create(ctx, persona); err != nil {
		if errors.Is(err, domain.ErrCedulaYaExiste) {
			return nil, err
		}
		s.logger.Error("Failed to create persona", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create persona: %w", err)
	}

	s.logger.Info("Persona created successfully", map[string]interface{}{
		"persona_id": persona.ID,
	})

	return persona, nil
}

// ListPersonas devuelve una página de personas en orden estable por ID
func (s *Service) ListPersonas(ctx context.Context, skip, limit int) ([]*domain.Persona, error) {
	skip, limit = marca.NormalizePage(skip, limit)

	personas, err := s.personaRepo.List(ctx, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}

	if personas == nil {
		personas = []*domain.Persona{}
	}

	return personas, nil
}

// GetPersonaByID devuelve la persona por ID
func (s *Service) GetPersonaByID(ctx context.Context, id int64) (*domain.Persona, error) {
	return s.personaRepo.GetByID(ctx, id)
}

// UpdatePersona aplica una actualización parcial
// Si se cambia la cédula, verifica que no pertenezca a otra persona
func (s *Service) UpdatePersona(ctx context.Context, id int64, req *UpdatePersonaRequest) (*domain.Persona, error) {
	persona, err := s.personaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Cedula != nil && *req.Cedula != persona.Cedula {
		existing, err := s.personaRepo.GetByCedula(ctx, *req.Cedula)
		if err != nil && !errors.Is(err, domain.ErrPersonaNotFound) {
			return nil, fmt.Errorf("failed to check existing persona: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrCedulaYaExiste
		}
		persona.Cedula = *req.Cedula
	}

	if req.Nombre != nil {
		persona.Nombre = *req.Nombre
	}

	if err := persona.Validate(); err != nil {
		return nil, err
	}

	if err := s.personaRepo.Update(ctx, persona); err != nil {
		if errors.Is(err, domain.ErrCedulaYaExiste) || errors.Is(err, domain.ErrPersonaNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to update persona", map[string]interface{}{
			"persona_id": id,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("failed to update persona: %w", err)
	}

	return persona, nil
}

// DeletePersona elimina la persona
// Falla con domain.ErrPersonaEnUso si aún figura como propietaria de vehículos
func (s *Service) DeletePersona(ctx context.Context, id int64) error {
	if _, err := s.personaRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.personaRepo.CountVehiculos(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count vehiculos for persona: %w", err)
	}
	if count > 0 {
		s.logger.Warn("Persona still owns vehicles", map[string]interface{}{
			"persona_id": id,
			"vehiculos":  count,
		})
		return domain.ErrPersonaEnUso
	}

	if err := s.personaRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Persona deleted", map[string]interface{}{
		"persona_id": id,
	})

	return nil
}
