package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/douglasmeneses/clinica-api/internal/platform/db"
)

type appointmentRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const appointmentCols = `id, scheduled_at, patient_id, doctor_id, reason, created_at, updated_at`

const joinedAppointmentCols = `a.id, a.scheduled_at, a.patient_id, a.doctor_id, a.reason, a.created_at, a.updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.ScheduledAt, &a.PatientID, &a.DoctorID, &a.Reason, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	created, err := scanAppointment(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointments (scheduled_at, patient_id, doctor_id, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING `+appointmentCols,
		a.ScheduledAt, a.PatientID, a.DoctorID, a.Reason))
	if err != nil {
		return fmt.Errorf("insert appointment: %w", db.TranslateError(err))
	}
	*a = *created
	return nil
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id int64) (*Detail, error) {
	var d Detail
	a, p, doc := &d.Appointment, &d.Patient, &d.Doctor
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT `+joinedAppointmentCols+`,
			p.id, p.name, p.email, p.cpf, p.phone, p.birth_date, p.created_at, p.updated_at,
			d.id, d.name, d.email, d.crm, d.specialty, d.created_at, d.updated_at
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN doctors d ON d.id = a.doctor_id
		WHERE a.id = $1`, id).Scan(
		&a.ID, &a.ScheduledAt, &a.PatientID, &a.DoctorID, &a.Reason, &a.CreatedAt, &a.UpdatedAt,
		&p.ID, &p.Name, &p.Email, &p.CPF, &p.Phone, &p.BirthDate, &p.CreatedAt, &p.UpdatedAt,
		&doc.ID, &doc.Name, &doc.Email, &doc.CRM, &doc.Specialty, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment %d: %w", id, err)
	}
	return &d, nil
}

func (r *appointmentRepoPG) List(ctx context.Context) ([]*Summary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+joinedAppointmentCols+`, p.name, p.cpf, d.name, d.specialty
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN doctors d ON d.id = a.doctor_id
		ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var out []*Summary
	for rows.Next() {
		var s Summary
		a := &s.Appointment
		if err := rows.Scan(
			&a.ID, &a.ScheduledAt, &a.PatientID, &a.DoctorID, &a.Reason, &a.CreatedAt, &a.UpdatedAt,
			&s.Patient.Name, &s.Patient.CPF, &s.Doctor.Name, &s.Doctor.Specialty,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *appointmentRepoPG) Update(ctx context.Context, id int64, in UpdateInput) (*Appointment, error) {
	b := db.NewUpdate("appointments")
	if v, ok := in.ScheduledAt.Get(); ok {
		b.Set("scheduled_at", v)
	}
	if v, ok := in.Reason.Get(); ok {
		b.Set("reason", v)
	}

	sql, args := b.ByID(id, appointmentCols)
	a, err := scanAppointment(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("update appointment %d: %w", id, db.TranslateError(err))
	}
	return a, nil
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id int64) (*Appointment, error) {
	a, err := scanAppointment(r.conn(ctx).QueryRow(ctx, `DELETE FROM appointments WHERE id = $1 RETURNING `+appointmentCols, id))
	if err != nil {
		return nil, fmt.Errorf("delete appointment %d: %w", id, db.TranslateError(err))
	}
	return a, nil
}
