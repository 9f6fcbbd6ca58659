package secretary

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/douglasmeneses/clinica-api/internal/platform/apperr"
	"github.com/douglasmeneses/clinica-api/internal/platform/db"
)

const (
	entity         = "secretary"
	msgNotFound    = "Secretário(a) não encontrado(a)."
	msgEmailInUse  = "Email já está em uso."
	msgPasswordLen = "senha deve ter no máximo 72 bytes"
)

type Service struct {
	repo   Repository
	hasher PasswordHasher
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Create hashes the password before anything is stored and returns the
// public projection.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Secretary, error) {
	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperr.NewValidation("Dados inválidos", []apperr.FieldError{{Field: "senha", Message: msgPasswordLen}})
	}
	if err != nil {
		return nil, fmt.Errorf("create secretary: %w", err)
	}

	sec := &Secretary{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}
	if err := s.repo.Create(ctx, sec, hash); err != nil {
		return nil, mapError("create", err)
	}
	return sec, nil
}

func (s *Service) List(ctx context.Context) ([]*Secretary, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError("list", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Secretary, error) {
	sec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError("get", err)
	}
	return sec, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Secretary, error) {
	sec, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapError("update", err)
	}
	return sec, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*Secretary, error) {
	sec, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, mapError("delete", err)
	}
	return sec, nil
}

// VerifyCredential reports whether secret matches the stored password of
// the secretary with the given email. An unknown email is a mismatch.
func (s *Service) VerifyCredential(ctx context.Context, email, secret string) (bool, error) {
	c, err := s.repo.credentialByEmail(ctx, email)
	if err != nil {
		return false, mapError("verify", err)
	}
	if c == nil {
		return false, nil
	}
	return s.hasher.Compare(c.Hash, secret)
}

func mapError(op string, err error) error {
	var uv *db.UniqueViolationError
	switch {
	case errors.Is(err, db.ErrRecordNotFound):
		return apperr.NewNotFound(entity, msgNotFound)
	case errors.As(err, &uv):
		return apperr.NewDuplicate(entity, uv.Field, msgEmailInUse, err)
	}
	return fmt.Errorf("%s secretary: %w", op, err)
}
