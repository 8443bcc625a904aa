package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/icanh/registro-vehiculos/internal/domain"
	"github.com/icanh/registro-vehiculos/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type vehiculoRepository struct {
	db *pgxpool.Pool
}

func NewVehiculoRepository(db *pgxpool.Pool) repository.VehiculoRepository {
	return &vehiculoRepository{db: db}
}

// selectVehiculo agrega los ids de propietarios en la misma consulta
// para no disparar una consulta extra por vehículo
const selectVehiculo = `
	SELECT v.id, v.modelo, v.marca_id, v.numero_puertas, v.color, v.created_at, v.updated_at,
	       COALESCE(array_agg(vp.persona_id) FILTER (WHERE vp.persona_id IS NOT NULL), '{}')
	FROM vehiculos v
	LEFT JOIN vehiculo_propietario vp ON vp.vehiculo_id = v.id
`

func scanVehiculo(row pgx.Row) (*domain.Vehiculo, error) {
	vehiculo := &domain.Vehiculo{}
	err := row.Scan(
		&vehiculo.ID,
		&vehiculo.Modelo,
		&vehiculo.MarcaID,
		&vehiculo.NumeroPuertas,
		&vehiculo.Color,
		&vehiculo.CreatedAt,
		&vehiculo.UpdatedAt,
		&vehiculo.PropietariosIDs,
	)
	if err != nil {
		return nil, err
	}
	return vehiculo, nil
}

func (r *vehiculoRepository) Create(ctx context.Context, vehiculo *domain.Vehiculo) error {
	query := `
		INSERT INTO vehiculos (modelo, marca_id, numero_puertas, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	vehiculo.CreatedAt = time.Now()
	vehiculo.UpdatedAt = vehiculo.CreatedAt

	err := r.db.QueryRow(ctx, query,
		vehiculo.Modelo,
		vehiculo.MarcaID,
		vehiculo.NumeroPuertas,
		vehiculo.Color,
		vehiculo.CreatedAt,
		vehiculo.UpdatedAt,
	).Scan(&vehiculo.ID)

	if err != nil {
		// FK marca_id: el servicio ya verificó la marca, esto cubre la carrera
		if isForeignKeyViolation(err) {
			return domain.ErrMarcaNotFound
		}
		return err
	}

	if vehiculo.PropietariosIDs == nil {
		vehiculo.PropietariosIDs = []int64{}
	}

	return nil
}

func (r *vehiculoRepository) GetByID(ctx context.Context, id int64) (*domain.Vehiculo, error) {
	query := selectVehiculo + `
		WHERE v.id = $1
		GROUP BY v.id
	`

	vehiculo, err := scanVehiculo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehiculoNotFound
		}
		return nil, err
	}

	return vehiculo, nil
}

func (r *vehiculoRepository) GetByPersonaID(ctx context.Context, personaID int64) ([]*domain.Vehiculo, error) {
	query := selectVehiculo + `
		WHERE v.id IN (SELECT vehiculo_id FROM vehiculo_propietario WHERE persona_id = $1)
		GROUP BY v.id
		ORDER BY v.id
	`

	return r.queryVehiculos(ctx, query, personaID)
}

// execer abstrae pgxpool.Pool y pgx.Tx para reutilizar las mismas
// sentencias dentro y fuera de una transacción
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *vehiculoRepository) Update(ctx context.Context, vehiculo *domain.Vehiculo) error {
	return updateVehiculo(ctx, r.db, vehiculo)
}

// UpdateWithPropietarios actualiza los campos escalares y reemplaza el
// conjunto completo de propietarios en una única transacción: un fallo en
// cualquier paso no deja el vehículo a medio actualizar
func (r *vehiculoRepository) UpdateWithPropietarios(ctx context.Context, vehiculo *domain.Vehiculo, personaIDs []int64) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := updateVehiculo(ctx, tx, vehiculo); err != nil {
			return err
		}
		return replacePropietarios(ctx, tx, vehiculo.ID, personaIDs)
	})
}

func updateVehiculo(ctx context.Context, db execer, vehiculo *domain.Vehiculo) error {
	query := `
		UPDATE vehiculos
		SET modelo = $2, marca_id = $3, numero_puertas = $4, color = $5, updated_at = $6
		WHERE id = $1
	`

	vehiculo.UpdatedAt = time.Now()

	result, err := db.Exec(ctx, query,
		vehiculo.ID,
		vehiculo.Modelo,
		vehiculo.MarcaID,
		vehiculo.NumeroPuertas,
		vehiculo.Color,
		vehiculo.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrMarcaNotFound
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVehiculoNotFound
	}

	return nil
}

func (r *vehiculoRepository) Delete(ctx context.Context, id int64) error {
	// vehiculo_propietario tiene ON DELETE CASCADE sobre vehiculo_id
	query := `DELETE FROM vehiculos WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVehiculoNotFound
	}

	return nil
}

func (r *vehiculoRepository) List(ctx context.Context, limit, offset int) ([]*domain.Vehiculo, error) {
	query := selectVehiculo + `
		GROUP BY v.id
		ORDER BY v.id
		LIMIT $1 OFFSET $2
	`

	return r.queryVehiculos(ctx, query, limit, offset)
}

func (r *vehiculoRepository) AddPropietario(ctx context.Context, vehiculoID, personaID int64) error {
	query := `
		INSERT INTO vehiculo_propietario (vehiculo_id, persona_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, vehiculoID, personaID, time.Now())
	if err != nil {
		// PK compuesta (vehiculo_id, persona_id): a lo sumo una fila por par
		if isUniqueViolation(err) {
			return domain.ErrPropietarioYaAsignado
		}
		return err
	}

	return nil
}

// replacePropietarios borra el conjunto actual e inserta el nuevo.
// Siempre corre dentro de la transacción del llamador
func replacePropietarios(ctx context.Context, tx execer, vehiculoID int64, personaIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM vehiculo_propietario WHERE vehiculo_id = $1`, vehiculoID); err != nil {
		return err
	}

	now := time.Now()
	for _, personaID := range personaIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO vehiculo_propietario (vehiculo_id, persona_id, created_at) VALUES ($1, $2, $3)`,
			vehiculoID, personaID, now,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrPropietarioYaAsignado
			}
			return err
		}
	}

	return nil
}

func (r *vehiculoRepository) queryVehiculos(ctx context.Context, query string, args ...interface{}) ([]*domain.Vehiculo, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehiculos []*domain.Vehiculo
	for rows.Next() {
		vehiculo, err := scanVehiculo(rows)
		if err != nil {
			return nil, err
		}
		vehiculos = append(vehiculos, vehiculo)
	}

	return vehiculos, rows.Err()
}
