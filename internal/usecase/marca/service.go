package marca

import (
	"context"
	"errors"
	"fmt"

	"github.com/icanh/registro-vehiculos/internal/domain"
	"github.com/icanh/registro-vehiculos/internal/pkg/logger"
	"github.com/icanh/registro-vehiculos/internal/repository"
)

// Paginación por defecto para los listados
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// CreateMarcaRequest - solicitud de creación de marca
type CreateMarcaRequest struct {
	NombreMarca string `json:"nombre_marca" validate:"required,max=255"`
	Pais        string `json:"pais" validate:"required,max=255"`
}

// UpdateMarcaRequest - actualización parcial: solo los campos presentes se aplican
type UpdateMarcaRequest struct {
	NombreMarca *string `json:"nombre_marca" validate:"omitempty,min=1,max=255"`
	Pais        *string `json:"pais" validate:"omitempty,min=1,max=255"`
}

// Service contiene la lógica de negocio de marcas
type Service struct {
	marcaRepo repository.MarcaRepository
	logger    logger.Logger
}

// NewService crea una nueva instancia de MarcaService
func NewService(marcaRepo repository.MarcaRepository, logger logger.Logger) *Service {
	return &Service{
		marcaRepo: marcaRepo,
		logger:    logger,
	}
}

// CreateMarca crea una nueva marca
// Falla con domain.ErrMarcaYaExiste si el nombre ya está registrado
func (s *Service) CreateMarca(ctx context.Context, req *CreateMarcaRequest) (*domain.Marca, error) {
	s.logger.Info("Creating new marca", map[string]interface{}{
		"nombre_marca": req.NombreMarca,
	})

	// Verificación rápida de unicidad; la restricción UNIQUE respalda la carrera
	existing, err := s.marcaRepo.GetByNombre(ctx, req.NombreMarca)
	if err != nil && !errors.Is(err, domain.ErrMarcaNotFound) {
		return nil, fmt.Errorf("failed to check existing marca: %w", err)
	}

	if existing != nil {
		s.logger.Warn("Marca already exists", map[string]interface{}{
			"nombre_marca": req.NombreMarca,
		})
		return nil, domain.ErrMarcaYaExiste
	}

	marca := &domain.Marca{
		NombreMarca: req.NombreMarca,
		Pais:        req.Pais,
	}

	if err := marca.Validate(); err != nil {
		return nil, err
	}

	if err := s.marcaRepo.Create(ctx, marca); err != nil {
		if errors.Is(err, domain.ErrMarcaYaExiste) {
			return nil, err
		}
		s.logger.Error("Failed to create marca", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create marca: %w", err)
	}

	s.logger.Info("Marca created successfully", map[string]interface{}{
		"marca_id": marca.ID,
	})

	return marca, nil
}

// ListMarcas devuelve una página de marcas en orden estable por ID
func (s *Service) ListMarcas(ctx context.Context, skip, limit int) ([]*domain.Marca, error) {
	skip, limit = NormalizePage(skip, limit)

	marcas, err := s.marcaRepo.List(ctx, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list marcas: %w", err)
	}

	if marcas == nil {
		marcas = []*domain.Marca{}
	}

	return marcas, nil
}

// GetMarcaByID devuelve la marca por ID
func (s *Service) GetMarcaByID(ctx context.Context, id int64) (*domain.Marca, error) {
	return s.marcaRepo.GetByID(ctx, id)
}

// UpdateMarca aplica una actualización parcial
// Si se cambia el nombre, verifica que no pertenezca a otra marca
func (s *Service) UpdateMarca(ctx context.Context, id int64, req *UpdateMarcaRequest) (*domain.Marca, error) {
	marca, err := s.marcaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NombreMarca != nil && *req.NombreMarca != marca.NombreMarca {
		existing, err := s.marcaRepo.GetByNombre(ctx, *req.NombreMarca)
		if err != nil && !errors.Is(err, domain.ErrMarcaNotFound) {
			return nil, fmt.Errorf("failed to check existing marca: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrMarcaYaExiste
		}
		marca.NombreMarca = *req.NombreMarca
	}

	if req.Pais != nil {
		marca.Pais = *req.Pais
	}

	if err := marca.Validate(); err != nil {
		return nil, err
	}

	if err := s.marcaRepo.Update(ctx, marca); err != nil {
		if errors.Is(err, domain.ErrMarcaYaExiste) || errors.Is(err, domain.ErrMarcaNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to update marca", map[string]interface{}{
			"marca_id": id,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("failed to update marca: %w", err)
	}

	return marca, nil
}

// DeleteMarca elimina la marca
// Falla con domain.ErrMarcaEnUso si algún vehículo la referencia
func (s *Service) DeleteMarca(ctx context.Context, id int64) error {
	if _, err := s.marcaRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.marcaRepo.CountVehiculos(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count vehiculos for marca: %w", err)
	}
	if count > 0 {
		s.logger.Warn("Marca is still referenced", map[string]interface{}{
			"marca_id":  id,
			"vehiculos": count,
		})
		return domain.ErrMarcaEnUso
	}

	if err := s.marcaRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Marca deleted", map[string]interface{}{
		"marca_id": id,
	})

	return nil
}

// NormalizePage acota skip/limit a valores seguros
func NormalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}
