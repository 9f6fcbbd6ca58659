package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/douglasmeneses/clinica-api/internal/platform/db"
)

type doctorRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const doctorCols = `id, name, email, crm, specialty, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	if err := row.Scan(&d.ID, &d.Name, &d.Email, &d.CRM, &d.Specialty, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	row := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctors (name, email, crm, specialty)
		VALUES ($1, $2, $3, $4)
		RETURNING `+doctorCols,
		d.Name, d.Email, d.CRM, d.Specialty)

	created, err := scanDoctor(row)
	if err != nil {
		return fmt.Errorf("insert doctor: %w", db.TranslateError(err))
	}
	*d = *created
	return nil
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor %d: %w", id, err)
	}
	return d, nil
}

func (r *doctorRepoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+doctorCols+` FROM doctors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	var out []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *doctorRepoPG) Update(ctx context.Context, id int64, in UpdateInput) (*Doctor, error) {
	b := db.NewUpdate("doctors")
	if v, ok := in.Name.Get(); ok {
		b.Set("name", v)
	}
	if v, ok := in.Email.Get(); ok {
		b.Set("email", v)
	}
	if v, ok := in.CRM.Get(); ok {
		b.Set("crm", v)
	}
	if v, ok := in.Specialty.Get(); ok {
		b.Set("specialty", v)
	}

	sql, args := b.ByID(id, doctorCols)
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("update doctor %d: %w", id, db.TranslateError(err))
	}
	return d, nil
}

func (r *doctorRepoPG) Delete(ctx context.Context, id int64) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx, `DELETE FROM doctors WHERE id = $1 RETURNING `+doctorCols, id))
	if err != nil {
		return nil, fmt.Errorf("delete doctor %d: %w", id, db.TranslateError(err))
	}
	return d, nil
}

func (r *doctorRepoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var found int64
	err := r.conn(ctx).QueryRow(ctx, `SELECT id FROM doctors WHERE id = $1 FOR KEY SHARE`, id).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check doctor %d: %w", id, err)
	}
	return true, nil
}
