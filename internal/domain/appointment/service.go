package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/douglasmeneses/clinica-api/internal/platform/apperr"
	"github.com/douglasmeneses/clinica-api/internal/platform/db"
)

const (
	entity             = "appointment"
	msgNotFound        = "Consulta não encontrada."
	msgPatientNotFound = "Paciente não encontrado"
	msgDoctorNotFound  = "Médico não encontrado"
)

type Service struct {
	repo     Repository
	patients ReferenceChecker
	doctors  ReferenceChecker
	tx       Transactor
}

func NewService(repo Repository, patients, doctors ReferenceChecker, tx Transactor) *Service {
	return &Service{repo: repo, patients: patients, doctors: doctors, tx: tx}
}

// Create checks the patient, then the doctor, then inserts, all in one
// transaction. The first missing reference aborts before any write.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Appointment, error) {
	a := &Appointment{
		ScheduledAt: in.ScheduledAt,
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		Reason:      in.Reason,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.patients.Exists(ctx, in.PatientID)
		if err != nil {
			return fmt.Errorf("check patient: %w", err)
		}
		if !ok {
			return apperr.NewReferenceMissing("patient", msgPatientNotFound)
		}

		ok, err = s.doctors.Exists(ctx, in.DoctorID)
		if err != nil {
			return fmt.Errorf("check doctor: %w", err)
		}
		if !ok {
			return apperr.NewReferenceMissing("doctor", msgDoctorNotFound)
		}

		return s.repo.Create(ctx, a)
	})
	if err != nil {
		return nil, mapError("create", err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]*Summary, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError("list", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError("get", err)
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Appointment, error) {
	a, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapError("update", err)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*Appointment, error) {
	a, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, mapError("delete", err)
	}
	return a, nil
}

func mapError(op string, err error) error {
	var ae *apperr.Error
	var fk *db.ForeignKeyViolationError
	switch {
	case errors.As(err, &ae):
		return ae
	case errors.Is(err, db.ErrRecordNotFound):
		return apperr.NewNotFound(entity, msgNotFound)
	case errors.As(err, &fk):
		// the row vanished between the check and the insert
		if strings.Contains(fk.Constraint, "doctor") {
			return apperr.NewReferenceMissing("doctor", msgDoctorNotFound)
		}
		return apperr.NewReferenceMissing("patient", msgPatientNotFound)
	}
	return fmt.Errorf("%s appointment: %w", op, err)
}
