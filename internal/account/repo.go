package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"uepex/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS usuarios (
	id             VARCHAR(36) PRIMARY KEY,
	nombre_usuario VARCHAR(50) NOT NULL,
	clave_hash     TEXT NOT NULL,
	rol            VARCHAR(30) NOT NULL DEFAULT 'Usuario'
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_usuarios_nombre ON usuarios (LOWER(nombre_usuario));
`

// Repository persists users in the usuarios table.
type Repository struct {
	db *sql.DB
}

// NewRepository builds a repository on an open database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the usuarios table when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create usuarios schema: %w", err)
	}
	return nil
}

// FindByUsername looks a user up ignoring case. It returns nil, nil when absent.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nombre_usuario, clave_hash, rol FROM usuarios WHERE LOWER(nombre_usuario) = LOWER($1)`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// Insert stores a new user. A duplicate username returns ErrUserExists.
func (r *Repository) Insert(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usuarios (id, nombre_usuario, clave_hash, rol) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Username, u.PasswordHash, u.Role,
	)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", u.Username, ErrUserExists)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
