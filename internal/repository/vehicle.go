// Package repository provides persistence implementations over PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lionscars/inventory/internal/models"
)

// PostgresVehicleRepository implements the vehicle record store against a
// PostgreSQL database. Each vehicle is one whole JSON document stored as a
// JSONB body under an auto-incrementing integer primary key; every write
// replaces the entire body.
type PostgresVehicleRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresVehicleRepository creates a new PostgresVehicleRepository with
// the given database connection.
func NewPostgresVehicleRepository(db *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{DB: db}
}

// ListAll returns every stored vehicle, newest id first. Rows whose body
// cannot be decoded are skipped instead of failing the whole listing; their
// ids are returned so callers can report them.
func (r *PostgresVehicleRepository) ListAll(ctx context.Context) ([]models.Vehicle, []int64, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, body FROM vehicles ORDER BY id DESC`)
	if err != nil {
		return nil, nil, fmt.Errorf("ListAll: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	var skipped []int64
	for rows.Next() {
		var id int64
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		var v models.Vehicle
		if err := json.Unmarshal(body, &v); err != nil {
			skipped = append(skipped, id)
			continue
		}
		v.ID = id
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("ListAll rows: %w", err)
	}
	return vehicles, skipped, nil
}

// Create persists a new vehicle document and returns it with the id the
// store assigned.
func (r *PostgresVehicleRepository) Create(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	v.ID = 0
	body, err := json.Marshal(v)
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("encode vehicle: %w", err)
	}

	var id int64
	err = r.DB.QueryRowContext(
		ctx,
		`INSERT INTO vehicles (body) VALUES ($1) RETURNING id`,
		body,
	).Scan(&id)
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("Create: %w", err)
	}

	v.ID = id
	return v, nil
}

// Update overwrites the entire stored body for the given id. When no row
// matches it reports success with matched=false; deciding whether that is
// an error is left to the caller.
func (r *PostgresVehicleRepository) Update(ctx context.Context, id int64, v models.Vehicle) (bool, error) {
	v.ID = 0
	body, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("encode vehicle: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `UPDATE vehicles SET body = $2 WHERE id = $1`, id, body)
	if err != nil {
		return false, fmt.Errorf("Update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Update rows affected: %w", err)
	}
	return n > 0, nil
}

// Delete removes the vehicle with the given id. Deleting an id that does
// not exist is not an error.
func (r *PostgresVehicleRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// GetByID fetches a single vehicle by id. Returns models.ErrNotFound when
// no row matches.
func (r *PostgresVehicleRepository) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	var body []byte
	err := r.DB.QueryRowContext(ctx, `SELECT body FROM vehicles WHERE id = $1`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vehicle{}, models.ErrNotFound
	}
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("GetByID: %w", err)
	}

	var v models.Vehicle
	if err := json.Unmarshal(body, &v); err != nil {
		return models.Vehicle{}, fmt.Errorf("decode vehicle %d: %w", id, err)
	}
	v.ID = id
	return v, nil
}

// ResetMetrics zeroes the views and interested counters inside every stored
// body in a single statement, so no read-modify-write window exists. It
// returns the number of documents touched.
func (r *PostgresVehicleRepository) ResetMetrics(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE vehicles SET body = jsonb_set(jsonb_set(body, '{vistas}', '0'), '{interesados}', '0')
	`)
	if err != nil {
		return 0, fmt.Errorf("ResetMetrics: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ResetMetrics rows affected: %w", err)
	}
	return n, nil
}
