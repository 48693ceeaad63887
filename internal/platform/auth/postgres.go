package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"whitekola/internal/database"
)

type PostgresRepository struct {
	db database.DB
}

func NewPostgresRepository(db database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a Account) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO accounts (id, email, password_hash, display_name, photo_url) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Email, a.PasswordHash, a.DisplayName, a.PhotoURL,
	)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, email, password_hash, display_name, photo_url, created_at, updated_at FROM accounts WHERE id = $1`,
		id,
	)
	return scanAccount(row)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (Account, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, email, password_hash, display_name, photo_url, created_at, updated_at FROM accounts WHERE email = $1`,
		email,
	)
	return scanAccount(row)
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func scanAccount(row database.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.PhotoURL, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}
