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

type personaRepository struct {
	db *pgxpool.Pool
}

func NewPersonaRepository(db *pgxpool.Pool) repository.PersonaRepository {
	return &personaRepository{db: db}
}

func (r *personaRepository) Create(ctx context.Context, persona *domain.Persona) error {
	query := `
		INSERT INTO personas (nombre, cedula, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	persona.CreatedAt = time.Now()
	persona.UpdatedAt = persona.CreatedAt

	err := r.db.QueryRow(ctx, query,
		persona.Nombre,
		persona.Cedula,
		persona.CreatedAt,
		persona.UpdatedAt,
	).Scan(&persona.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCedulaYaExiste
		}
		return err
	}

	return nil
}

func (r *personaRepository) GetByID(ctx context.Context, id int64) (*domain.Persona, error) {
	query := `
		SELECT id, nombre, cedula, created_at, updated_at
		FROM personas
		WHERE id = $1
	`

	persona := &domain.Persona{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&persona.ID,
		&persona.Nombre,
		&persona.Cedula,
		&persona.CreatedAt,
		&persona.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPersonaNotFound
		}
		return nil, err
	}

	return persona, nil
}

func (r *personaRepository) GetByCedula(ctx context.Context, cedula string) (*domain.Persona, error) {
	query := `
		SELECT id, nombre, cedula, created_at, updated_at
		FROM personas
		WHERE cedula = $1
	`

	persona := &domain.Persona{}
	err := r.db.QueryRow(ctx, query, cedula).Scan(
		&persona.ID,
		&persona.Nombre,
		&persona.Cedula,
		&persona.CreatedAt,
		&persona.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPersonaNotFound
		}
		return nil, err
	}

	return persona, nil
}

func (r *personaRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Persona, error) {
	if len(ids) == 0 {
		return []*domain.Persona{}, nil
	}

	query := `
		SELECT id, nombre, cedula, created_at, updated_at
		FROM personas
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var personas []*domain.Persona
	for rows.Next() {
		persona := &domain.Persona{}
		err := rows.Scan(
			&persona.ID,
			&persona.Nombre,
			&persona.Cedula,
			&persona.CreatedAt,
			&persona.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		personas = append(personas, persona)
	}

	return personas, rows.Err()
}

func (r *personaRepository) Update(ctx context.Context, persona *domain.Persona) error {
	query := `
		UPDATE personas
		SET nombre = $2, cedula = $3, updated_at = $4
		WHERE id = $1
	`

	persona.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		persona.ID,
		persona.Nombre,
		persona.Cedula,
		persona.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCedulaYaExiste
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPersonaNotFound
	}

	return nil
}

func (r *personaRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM personas WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPersonaEnUso
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPersonaNotFound
	}

	return nil
}

func (r *personaRepository) List(ctx context.Context, limit, offset int) ([]*domain.Persona, error) {
	query := `
		SELECT id, nombre, cedula, created_at, updated_at
		FROM personas
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var personas []*domain.Persona
	for rows.Next() {
		persona := &domain.Persona{}
		err := rows.Scan(
			&persona.ID,
			&persona.Nombre,
			&persona.Cedula,
			&persona.CreatedAt,
			&persona.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		personas = append(personas, persona)
	}

	return personas, rows.Err()
}

func (r *personaRepository) CountVehiculos(ctx context.Context, personaID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM vehiculo_propietario WHERE persona_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, personaID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
