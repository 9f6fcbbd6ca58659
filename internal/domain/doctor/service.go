package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/douglasmeneses/clinica-api/internal/platform/apperr"
	"github.com/douglasmeneses/clinica-api/internal/platform/db"
)

const (
	entity      = "doctor"
	msgNotFound = "Médico(a) não encontrado(a)."
	msgInUse    = "Médico(a) possui consultas vinculadas."
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Doctor, error) {
	d := &Doctor{
		Name:      in.Name,
		Email:     in.Email,
		CRM:       in.CRM,
		Specialty: in.Specialty,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, mapError("create", err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError("list", err)
	}
	return out, nil
}

// Get returns nil without error when the doctor does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError("get", err)
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Doctor, error) {
	d, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapError("update", err)
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*Doctor, error) {
	d, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, mapError("delete", err)
	}
	return d, nil
}

// Exists satisfies the reference check used when scheduling appointments.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func mapError(op string, err error) error {
	var uv *db.UniqueViolationError
	var fk *db.ForeignKeyViolationError
	switch {
	case errors.Is(err, db.ErrRecordNotFound):
		return apperr.NewNotFound(entity, msgNotFound)
	case errors.As(err, &uv):
		return apperr.NewDuplicate(entity, uv.Field, "Campo único já existe: "+uv.Field, err)
	case errors.As(err, &fk):
		return apperr.NewInUse(entity, msgInUse, err)
	}
	return fmt.Errorf("%s doctor: %w", op, err)
}
