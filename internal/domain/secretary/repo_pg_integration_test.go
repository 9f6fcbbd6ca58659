//go:build integration

package secretary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/douglasmeneses/clinica-api/internal/platform/apperr"
	"github.com/douglasmeneses/clinica-api/internal/testutil/containers"
	"github.com/douglasmeneses/clinica-api/pkg/optional"
)

var pg *containers.Postgres

func TestMain(m *testing.M) {
	var err error
	pg, err = containers.StartPostgres(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup postgres container: %v\n", err)
		os.Exit(1)
	}
	code := m.Run()
	_ = pg.Terminate()
	os.Exit(code)
}

func newIntegrationService() *Service {
	return NewService(NewRepo(pg.Pool), NewBcryptHasher(4))
}

func TestSecretaryService_StoresOnlyHash(t *testing.T) {
	pg.Reset(t)
	ctx := context.Background()
	svc := newIntegrationService()

	s, err := svc.Create(ctx, CreateInput{Name: "Beatriz Lopes", Email: "bia@clinica.com", Password: "segredo123"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var stored string
	if err := pg.Pool.QueryRow(ctx, `SELECT password_hash FROM secretaries WHERE id = $1`, s.ID).Scan(&stored); err != nil {
		t.Fatalf("read hash: %v", err)
	}
	if stored == "segredo123" || len(stored) < 59 {
		t.Errorf("expected a bcrypt hash, got %q", stored)
	}

	ok, err := svc.VerifyCredential(ctx, "bia@clinica.com", "segredo123")
	if err != nil || !ok {
		t.Fatalf("expected credential to verify, got %v %v", ok, err)
	}
}

func TestSecretaryService_HashStableAcrossUpdate(t *testing.T) {
	pg.Reset(t)
	ctx := context.Background()
	svc := newIntegrationService()

	s, err := svc.Create(ctx, CreateInput{Name: "Rafael Dias", Email: "rafael@clinica.com", Password: "minhasenha"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, s.ID, UpdateInput{Email: optional.Some("rafael.dias@clinica.com")}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	ok, err := svc.VerifyCredential(ctx, "rafael.dias@clinica.com", "minhasenha")
	if err != nil || !ok {
		t.Fatalf("expected credential to survive profile update, got %v %v", ok, err)
	}
}

func TestSecretaryService_DuplicateEmail(t *testing.T) {
	pg.Reset(t)
	ctx := context.Background()
	svc := newIntegrationService()

	in := CreateInput{Name: "Clara Nunes", Email: "clara@clinica.com", Password: "123456"}
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := svc.Create(ctx, in)
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.Duplicate {
		t.Fatalf("expected Duplicate, got %v", err)
	}
	if ae.Message != "Email já está em uso." {
		t.Errorf("unexpected message %q", ae.Message)
	}
}

func TestSecretaryService_SameEmailAcrossKinds(t *testing.T) {
	pg.Reset(t)
	ctx := context.Background()
	svc := newIntegrationService()

	_, err := pg.Pool.Exec(ctx, `
		INSERT INTO doctors (name, email, crm, specialty)
		VALUES ('Dr. Teste', 'compartilhado@clinica.com', '9999', 'Clínica Geral')`)
	if err != nil {
		t.Fatalf("insert doctor: %v", err)
	}

	if _, err := svc.Create(ctx, CreateInput{Name: "Compartilhado", Email: "compartilhado@clinica.com", Password: "123456"}); err != nil {
		t.Fatalf("expected email uniqueness to be per kind, got %v", err)
	}
}

func TestSecretaryService_DeleteReturnsView(t *testing.T) {
	pg.Reset(t)
	ctx := context.Background()
	svc := newIntegrationService()

	s, err := svc.Create(ctx, CreateInput{Name: "Davi Melo", Email: "davi@clinica.com", Password: "123456"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := svc.Delete(ctx, s.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.Email != "davi@clinica.com" {
		t.Errorf("expected deleted view, got %+v", deleted)
	}
	if _, err := svc.Delete(ctx, s.ID); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected NotFound on second delete, got %v", err)
	}
}
