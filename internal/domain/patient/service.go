package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/douglasmeneses/clinica-api/internal/platform/apperr"
	"github.com/douglasmeneses/clinica-api/internal/platform/db"
	"github.com/douglasmeneses/clinica-api/pkg/optional"
)

const (
	entity      = "patient"
	msgNotFound = "Paciente não encontrado(a)."
	msgInUse    = "Paciente possui consultas vinculadas."
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Patient, error) {
	p := &Patient{
		Name:      in.Name,
		Email:     in.Email,
		CPF:       in.CPF,
		Phone:     in.Phone,
		BirthDate: dateOnly(in.BirthDate),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, mapError("create", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError("list", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError("get", err)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Patient, error) {
	in.BirthDate = optional.Map(in.BirthDate, dateOnly)
	p, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapError("update", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*Patient, error) {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, mapError("delete", err)
	}
	return p, nil
}

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
	return fmt.Errorf("%s patient: %w", op, err)
}
