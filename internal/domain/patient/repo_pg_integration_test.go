//go:build integration

package patient

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/douglasmeneses/clinica-api/internal/platform/apperr"
	"github.com/douglasmeneses/clinica-api/internal/platform/db"
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

func TestPatientRepoPG_RoundTrip(t *testing.T) {
	pg.Reset(t)
	ctx := context.Background()
	svc := NewService(NewRepo(pg.Pool))

	phone := "11987654321"
	born := time.Date(1985, 7, 20, 0, 0, 0, 0, time.UTC)
	p, err := svc.Create(ctx, CreateInput{
		Name:      "Maria Oliveira",
		Email:     "maria@mail.com",
		CPF:       "98765432100",
		Phone:     &phone,
		BirthDate: born,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, p.ID)
	if err != nil || got == nil {
		t.Fatalf("Get: %v %v", got, err)
	}
	if !got.BirthDate.Equal(born) {
		t.Errorf("expected birth date %s, got %s", born, got.BirthDate)
	}
	if got.Phone == nil || *got.Phone != phone {
		t.Errorf("expected phone %s, got %v", phone, got.Phone)
	}

	// Omitted fields survive a partial update.
	updated, err := svc.Update(ctx, p.ID, UpdateInput{Name: optional.Some("Maria O. Santos")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CPF != p.CPF || updated.Email != p.Email || updated.Phone == nil {
		t.Errorf("partial update changed unset fields: %+v", updated)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 patient, got %d", len(list))
	}
}

func TestPatientService_DuplicateCPF(t *testing.T) {
	pg.Reset(t)
	ctx := context.Background()
	svc := NewService(NewRepo(pg.Pool))

	in := CreateInput{Name: "Carlos Souza", Email: "carlos@mail.com", CPF: "11122233344", BirthDate: time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)}
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	in.Email = "outro@mail.com"
	_, err := svc.Create(ctx, in)
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.Duplicate {
		t.Fatalf("expected Duplicate, got %v", err)
	}
	if ae.Field != "cpf" {
		t.Errorf("expected field cpf, got %s", ae.Field)
	}
}

func TestPatientService_MissingID(t *testing.T) {
	pg.Reset(t)
	ctx := context.Background()
	svc := NewService(NewRepo(pg.Pool))

	if _, err := svc.Update(ctx, 999, UpdateInput{Name: optional.Some("Ninguém")}); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected NotFound on update, got %v", err)
	}
	if _, err := svc.Delete(ctx, 999); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected NotFound on delete, got %v", err)
	}
	ok, err := svc.Exists(ctx, 999)
	if err != nil || ok {
		t.Errorf("expected Exists=false, got %v %v", ok, err)
	}
}

func TestPatientRepoPG_ExistsInsideTx(t *testing.T) {
	pg.Reset(t)
	ctx := context.Background()
	repo := NewRepo(pg.Pool)

	p := &Patient{Name: "Lia Costa", Email: "lia@mail.com", CPF: "55566677788", BirthDate: time.Date(2000, 2, 2, 0, 0, 0, 0, time.UTC)}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := db.NewTxManager(pg.Pool).WithinTx(ctx, func(ctx context.Context) error {
		ok, err := repo.Exists(ctx, p.ID)
		if err != nil {
			return err
		}
		if !ok {
			t.Error("expected patient to exist inside the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}
}
