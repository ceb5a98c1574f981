// Package repository provides persistence implementations over PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lionscars/inventory/internal/models"
)

// PostgresReferenceRepository implements the brand, color and user lookup
// tables. Inserting a duplicate key is a no-op, not an error; the caller is
// told whether a row was actually inserted.
type PostgresReferenceRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresReferenceRepository creates a new PostgresReferenceRepository
// with the given database connection.
func NewPostgresReferenceRepository(db *sql.DB) *PostgresReferenceRepository {
	return &PostgresReferenceRepository{DB: db}
}

// ListBrands returns all brands ordered by name.
func (r *PostgresReferenceRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ListBrands: %w", err)
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// CreateBrand inserts a brand. If the name already exists nothing is
// inserted and the existing row is returned with inserted=false.
func (r *PostgresReferenceRepository) CreateBrand(ctx context.Context, b models.Brand) (models.Brand, bool, error) {
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO brands (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`,
		b.Name,
	).Scan(&b.ID)
	if err == nil {
		return b, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Brand{}, false, fmt.Errorf("CreateBrand: %w", err)
	}

	// Duplicate name: fetch the existing row so the caller still gets an id.
	err = r.DB.QueryRowContext(ctx, `SELECT id FROM brands WHERE name = $1`, b.Name).Scan(&b.ID)
	if err != nil {
		return models.Brand{}, false, fmt.Errorf("CreateBrand lookup: %w", err)
	}
	return b, false, nil
}

// DeleteBrand removes a brand by id; missing ids are not an error.
func (r *PostgresReferenceRepository) DeleteBrand(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id); err != nil {
		return fmt.Errorf("DeleteBrand: %w", err)
	}
	return nil
}

// ListColors returns all colors ordered by name.
func (r *PostgresReferenceRepository) ListColors(ctx context.Context) ([]models.Color, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, COALESCE(hex, '') FROM colors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ListColors: %w", err)
	}
	defer rows.Close()

	var colors []models.Color
	for rows.Next() {
		var c models.Color
		if err := rows.Scan(&c.ID, &c.Name, &c.Hex); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}

// CreateColor inserts a color. If the name already exists nothing is
// inserted and the existing row is returned with inserted=false.
func (r *PostgresReferenceRepository) CreateColor(ctx context.Context, c models.Color) (models.Color, bool, error) {
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO colors (name, hex) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING RETURNING id`,
		c.Name, c.Hex,
	).Scan(&c.ID)
	if err == nil {
		return c, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Color{}, false, fmt.Errorf("CreateColor: %w", err)
	}

	err = r.DB.QueryRowContext(
		ctx,
		`SELECT id, COALESCE(hex, '') FROM colors WHERE name = $1`,
		c.Name,
	).Scan(&c.ID, &c.Hex)
	if err != nil {
		return models.Color{}, false, fmt.Errorf("CreateColor lookup: %w", err)
	}
	return c, false, nil
}

// DeleteColor removes a color by id; missing ids are not an error.
func (r *PostgresReferenceRepository) DeleteColor(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM colors WHERE id = $1`, id); err != nil {
		return fmt.Errorf("DeleteColor: %w", err)
	}
	return nil
}

// ListUsers returns all user accounts, in no particular order.
func (r *PostgresReferenceRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, username, password, role FROM users`)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.Role); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateUser inserts a user account. If the username already exists nothing
// is inserted and the existing row is returned with inserted=false.
func (r *PostgresReferenceRepository) CreateUser(ctx context.Context, u models.User) (models.User, bool, error) {
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO users (username, password, role) VALUES ($1, $2, $3) ON CONFLICT (username) DO NOTHING RETURNING id`,
		u.Username, u.Password, u.Role,
	).Scan(&u.ID)
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, false, fmt.Errorf("CreateUser: %w", err)
	}

	err = r.DB.QueryRowContext(
		ctx,
		`SELECT id, password, role FROM users WHERE username = $1`,
		u.Username,
	).Scan(&u.ID, &u.Password, &u.Role)
	if err != nil {
		return models.User{}, false, fmt.Errorf("CreateUser lookup: %w", err)
	}
	return u, false, nil
}

// DeleteUser removes a user by id; missing ids are not an error.
func (r *PostgresReferenceRepository) DeleteUser(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}

// Authenticate looks up a user by exact username and password match and
// returns the stored role. Returns models.ErrInvalidCredentials when no row
// matches both fields.
func (r *PostgresReferenceRepository) Authenticate(ctx context.Context, username, password string) (string, error) {
	var role string
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT role FROM users WHERE username = $1 AND password = $2`,
		username, password,
	).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("Authenticate: %w", err)
	}
	return role, nil
}
