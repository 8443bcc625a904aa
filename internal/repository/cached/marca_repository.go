package cached

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/icanh/registro-vehiculos/internal/domain"
	"github.com/icanh/registro-vehiculos/internal/pkg/redis"
	"github.com/icanh/registro-vehiculos/internal/repository"
)

const (
	marcaCachePrefix = "marca:"
	marcaCacheTTL    = 1 * time.Hour
)

// MarcaRepository agrega caché de lectura al repositorio de marcas.
// Las marcas se consultan en cada ensamblado de vehículo y cambian poco,
// por eso son la única entidad cacheada.
type MarcaRepository struct {
	repo  repository.MarcaRepository
	cache *redis.Client
}

// NewMarcaRepository crea el repositorio de marcas con caché
func NewMarcaRepository(repo repository.MarcaRepository, cache *redis.Client) repository.MarcaRepository {
	return &MarcaRepository{
		repo:  repo,
		cache: cache,
	}
}

// GetByID devuelve la marca por ID (con caché)
func (r *MarcaRepository) GetByID(ctx context.Context, id int64) (*domain.Marca, error) {
	cacheKey := fmt.Sprintf("%sid:%d", marcaCachePrefix, id)

	// Cualquier fallo de la caché (miss, redis caído, entrada corrupta)
	// degrada a la BD sin fallar la operación
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		marca := &domain.Marca{}
		if err := json.Unmarshal([]byte(cached), marca); err == nil {
			return marca, nil
		}
		_ = r.cache.Del(ctx, cacheKey)
	}

	marca, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(marca); err == nil {
		_ = r.cache.Set(ctx, cacheKey, string(data), marcaCacheTTL)
	}

	return marca, nil
}

// GetByNombre devuelve la marca por nombre (sin caché: solo se usa en la
// verificación de duplicados, donde un valor viejo daría un falso positivo)
func (r *MarcaRepository) GetByNombre(ctx context.Context, nombre string) (*domain.Marca, error) {
	return r.repo.GetByNombre(ctx, nombre)
}

// Create inserta la marca; no hay nada que invalidar para un ID nuevo
func (r *MarcaRepository) Create(ctx context.Context, marca *domain.Marca) error {
	return r.repo.Create(ctx, marca)
}

// Update actualiza la marca e invalida su entrada de caché
func (r *MarcaRepository) Update(ctx context.Context, marca *domain.Marca) error {
	if err := r.repo.Update(ctx, marca); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, fmt.Sprintf("%sid:%d", marcaCachePrefix, marca.ID))

	return nil
}

// Delete elimina la marca e invalida su entrada de caché
func (r *MarcaRepository) Delete(ctx context.Context, id int64) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, fmt.Sprintf("%sid:%d", marcaCachePrefix, id))

	return nil
}

// List no se cachea: los listados paginados se usan poco
func (r *MarcaRepository) List(ctx context.Context, limit, offset int) ([]*domain.Marca, error) {
	return r.repo.List(ctx, limit, offset)
}

// CountVehiculos siempre consulta la BD: respalda la decisión de borrado
func (r *MarcaRepository) CountVehiculos(ctx context.Context, marcaID int64) (int64, error) {
	return r.repo.CountVehiculos(ctx, marcaID)
}
