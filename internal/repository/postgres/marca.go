package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/icanh/registro-vehiculos/internal/domain"
	"github.com/icanh/registro-vehiculos/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type marcaRepository struct {
	db *pgxpool.Pool
}

func NewMarcaRepository(db *pgxpool.Pool) repository.MarcaRepository {
	return &marcaRepository{db: db}
}

func (r *marcaRepository) Create(ctx context.Context, marca *domain.Marca) error {
	query := `
		INSERT INTO marcas (nombre_marca, pais, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	marca.CreatedAt = time.Now()
	marca.UpdatedAt = marca.CreatedAt

	err := r.db.QueryRow(ctx, query,
		marca.NombreMarca,
		marca.Pais,
		marca.CreatedAt,
		marca.UpdatedAt,
	).Scan(&marca.ID)

	if err != nil {
		// Respaldo de la restricción UNIQUE ante dos create simultáneos
		if isUniqueViolation(err) {
			return domain.ErrMarcaYaExiste
		}
		return err
	}

	return nil
}

func (r *marcaRepository) GetByID(ctx context.Context, id int64) (*domain.Marca, error) {
	query := `
		SELECT id, nombre_marca, pais, created_at, updated_at
		FROM marcas
		WHERE id = $1
	`

	marca := &domain.Marca{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&marca.ID,
		&marca.NombreMarca,
		&marca.Pais,
		&marca.CreatedAt,
		&marca.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMarcaNotFound
		}
		return nil, err
	}

	return marca, nil
}

func (r *marcaRepository) GetByNombre(ctx context.Context, nombre string) (*domain.Marca, error) {
	query := `
		SELECT id, nombre_marca, pais, created_at, updated_at
		FROM marcas
		WHERE nombre_marca = $1
	`

	marca := &domain.Marca{}
	err := r.db.QueryRow(ctx, query, nombre).Scan(
		&marca.ID,
		&marca.NombreMarca,
		&marca.Pais,
		&marca.CreatedAt,
		&marca.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMarcaNotFound
		}
		return nil, err
	}

	return marca, nil
}

func (r *marcaRepository) Update(ctx context.Context, marca *domain.Marca) error {
	query := `
		UPDATE marcas
		SET nombre_marca = $2, pais = $3, updated_at = $4
		WHERE id = $1
	`

	marca.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		marca.ID,
		marca.NombreMarca,
		marca.Pais,
		marca.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMarcaYaExiste
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrMarcaNotFound
	}

	return nil
}

func (r *marcaRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM marcas WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		// La FK desde vehiculos es RESTRICT: el servicio ya lo verifica,
		// esto cubre la carrera entre la verificación y el borrado
		if isForeignKeyViolation(err) {
			return domain.ErrMarcaEnUso
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrMarcaNotFound
	}

	return nil
}

func (r *marcaRepository) List(ctx context.Context, limit, offset int) ([]*domain.Marca, error) {
	query := `
		SELECT id, nombre_marca, pais, created_at, updated_at
		FROM marcas
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marcas []*domain.Marca
	for rows.Next() {
		marca := &domain.Marca{}
		err := rows.Scan(
			&marca.ID,
			&marca.NombreMarca,
			&marca.Pais,
			&marca.CreatedAt,
			&marca.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		marcas = append(marcas, marca)
	}

	return marcas, rows.Err()
}

func (r *marcaRepository) CountVehiculos(ctx context.Context, marcaID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM vehiculos WHERE marca_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, marcaID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
