package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/douglasmeneses/clinica-api/internal/platform/db"
)

type patientRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, name, email, cpf, phone, birth_date, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.CPF, &p.Phone, &p.BirthDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	row := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (name, email, cpf, phone, birth_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+patientCols,
		p.Name, p.Email, p.CPF, p.Phone, p.BirthDate)

	created, err := scanPatient(row)
	if err != nil {
		return fmt.Errorf("insert patient: %w", db.TranslateError(err))
	}
	*p = *created
	return nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get patient %d: %w", id, err)
	}
	return p, nil
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var out []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *patientRepoPG) Update(ctx context.Context, id int64, in UpdateInput) (*Patient, error) {
	b := db.NewUpdate("patients")
	if v, ok := in.Name.Get(); ok {
		b.Set("name", v)
	}
	if v, ok := in.Email.Get(); ok {
		b.Set("email", v)
	}
	if v, ok := in.CPF.Get(); ok {
		b.Set("cpf", v)
	}
	if v, ok := in.Phone.Get(); ok {
		b.Set("phone", v)
	}
	if v, ok := in.BirthDate.Get(); ok {
		b.Set("birth_date", v)
	}

	sql, args := b.ByID(id, patientCols)
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("update patient %d: %w", id, db.TranslateError(err))
	}
	return p, nil
}

func (r *patientRepoPG) Delete(ctx context.Context, id int64) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `DELETE FROM patients WHERE id = $1 RETURNING `+patientCols, id))
	if err != nil {
		return nil, fmt.Errorf("delete patient %d: %w", id, db.TranslateError(err))
	}
	return p, nil
}

// Exists takes a FOR KEY SHARE lock so that a concurrent delete waits for
// the caller's transaction.
func (r *patientRepoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var found int64
	err := r.conn(ctx).QueryRow(ctx, `SELECT id FROM patients WHERE id = $1 FOR KEY SHARE`, id).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check patient %d: %w", id, err)
	}
	return true, nil
}
