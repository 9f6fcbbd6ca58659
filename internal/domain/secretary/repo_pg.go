package secretary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/douglasmeneses/clinica-api/internal/platform/db"
)

type secretaryRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &secretaryRepoPG{pool: pool}
}

func (r *secretaryRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// Never includes password_hash.
const secretaryCols = `id, name, email, phone, created_at, updated_at`

func scanSecretary(row pgx.Row) (*Secretary, error) {
	var s Secretary
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *secretaryRepoPG) Create(ctx context.Context, s *Secretary, passwordHash string) error {
	row := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO secretaries (name, email, password_hash, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING `+secretaryCols,
		s.Name, s.Email, passwordHash, s.Phone)

	created, err := scanSecretary(row)
	if err != nil {
		return fmt.Errorf("insert secretary: %w", db.TranslateError(err))
	}
	*s = *created
	return nil
}

func (r *secretaryRepoPG) GetByID(ctx context.Context, id int64) (*Secretary, error) {
	s, err := scanSecretary(r.conn(ctx).QueryRow(ctx, `SELECT `+secretaryCols+` FROM secretaries WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get secretary %d: %w", id, err)
	}
	return s, nil
}

func (r *secretaryRepoPG) List(ctx context.Context) ([]*Secretary, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+secretaryCols+` FROM secretaries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list secretaries: %w", err)
	}
	defer rows.Close()

	var out []*Secretary
	for rows.Next() {
		s, err := scanSecretary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan secretary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *secretaryRepoPG) Update(ctx context.Context, id int64, in UpdateInput) (*Secretary, error) {
	b := db.NewUpdate("secretaries")
	if v, ok := in.Name.Get(); ok {
		b.Set("name", v)
	}
	if v, ok := in.Email.Get(); ok {
		b.Set("email", v)
	}
	if v, ok := in.Phone.Get(); ok {
		b.Set("phone", v)
	}

	sql, args := b.ByID(id, secretaryCols)
	s, err := scanSecretary(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("update secretary %d: %w", id, db.TranslateError(err))
	}
	return s, nil
}

func (r *secretaryRepoPG) Delete(ctx context.Context, id int64) (*Secretary, error) {
	s, err := scanSecretary(r.conn(ctx).QueryRow(ctx, `DELETE FROM secretaries WHERE id = $1 RETURNING `+secretaryCols, id))
	if err != nil {
		return nil, fmt.Errorf("delete secretary %d: %w", id, db.TranslateError(err))
	}
	return s, nil
}

func (r *secretaryRepoPG) credentialByEmail(ctx context.Context, email string) (*credential, error) {
	var c credential
	err := r.conn(ctx).QueryRow(ctx, `SELECT id, password_hash FROM secretaries WHERE email = $1`, email).
		Scan(&c.SecretaryID, &c.Hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get secretary credential: %w", err)
	}
	return &c, nil
}
