package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"whitekola/internal/database"
)

type Postgres struct {
	db database.DB
}

func NewPostgres(db database.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Get(ctx context.Context, collection, id string, out any) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil docstore")
	}
	var raw []byte
	err := s.db.QueryRow(
		ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Postgres) Create(ctx context.Context, collection string, data any, id string) (string, error) {
	if s == nil || s.db == nil {
		return "", fmt.Errorf("nil docstore")
	}
	if id == "" {
		id = uuid.NewString()
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	_, err = s.db.Exec(
		ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		collection, id, raw,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Postgres) Update(ctx context.Context, collection, id string, data any) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil docstore")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	affected, err := s.db.Exec(
		ctx,
		`UPDATE documents SET data = $3, updated_at = now() WHERE collection = $1 AND id = $2`,
		collection, id, raw,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, collection, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil docstore")
	}
	_, err := s.db.Exec(
		ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	return err
}

func (s *Postgres) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("nil docstore")
	}
	rows, err := s.db.Query(
		ctx,
		`SELECT data FROM documents WHERE collection = $1 ORDER BY created_at DESC`,
		collection,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
