package main

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/douglasmeneses/clinica-api/internal/domain/appointment"
	"github.com/douglasmeneses/clinica-api/internal/domain/doctor"
	"github.com/douglasmeneses/clinica-api/internal/domain/patient"
	"github.com/douglasmeneses/clinica-api/internal/domain/secretary"
	"github.com/douglasmeneses/clinica-api/internal/platform/apperr"
)

var specialties = []string{
	"Cardiologia",
	"Clínica Geral",
	"Dermatologia",
	"Endocrinologia",
	"Ginecologia",
	"Neurologia",
	"Oftalmologia",
	"Ortopedia",
	"Pediatria",
	"Psiquiatria",
}

var reasons = []string{
	"Consulta de rotina",
	"Retorno",
	"Avaliação de exames",
	"Dor persistente",
	"Renovação de receita",
}

type seedCounts struct {
	secretaries  int
	doctors      int
	patients     int
	appointments int
}

func seedCmd() *cobra.Command {
	var counts seedCounts
	var seed uint64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with fake clinic data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			return runSeed(ctx, newServices(pool, cfg), gofakeit.New(seed), counts)
		},
	}
	cmd.Flags().IntVar(&counts.secretaries, "secretaries", 2, "Number of secretaries")
	cmd.Flags().IntVar(&counts.doctors, "doctors", 10, "Number of doctors")
	cmd.Flags().IntVar(&counts.patients, "patients", 50, "Number of patients")
	cmd.Flags().IntVar(&counts.appointments, "appointments", 100, "Number of appointments")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 picks one)")
	return cmd
}

// runSeed goes through the services so every generated record passes the
// same uniqueness and reference checks as API traffic. Duplicate fakes are
// skipped.
func runSeed(ctx context.Context, svc *services, f *gofakeit.Faker, counts seedCounts) error {
	now := time.Now()

	created := 0
	for i := 0; i < counts.secretaries; i++ {
		_, err := svc.secretaries.Create(ctx, fakeSecretary(f, i))
		if skip, err := seedErr("secretary", err); err != nil {
			return err
		} else if !skip {
			created++
		}
	}
	log.Info().Int("count", created).Msg("seeded secretaries")

	var doctorIDs []int64
	for i := 0; i < counts.doctors; i++ {
		d, err := svc.doctors.Create(ctx, fakeDoctor(f, i))
		if skip, err := seedErr("doctor", err); err != nil {
			return err
		} else if !skip {
			doctorIDs = append(doctorIDs, d.ID)
		}
	}
	log.Info().Int("count", len(doctorIDs)).Msg("seeded doctors")

	var patientIDs []int64
	for i := 0; i < counts.patients; i++ {
		p, err := svc.patients.Create(ctx, fakePatient(f, i, now))
		if skip, err := seedErr("patient", err); err != nil {
			return err
		} else if !skip {
			patientIDs = append(patientIDs, p.ID)
		}
	}
	log.Info().Int("count", len(patientIDs)).Msg("seeded patients")

	if len(doctorIDs) == 0 || len(patientIDs) == 0 {
		log.Warn().Msg("no doctors or patients, skipping appointments")
		return nil
	}

	created = 0
	for i := 0; i < counts.appointments; i++ {
		in := fakeAppointment(f, patientIDs, doctorIDs, now)
		if _, err := svc.appointments.Create(ctx, in); err != nil {
			return fmt.Errorf("seed appointment: %w", err)
		}
		created++
	}
	log.Info().Int("count", created).Msg("seeded appointments")
	return nil
}

// seedErr reports whether a create failed on a duplicate fake value, which
// is skipped, or with an error that aborts the seed.
func seedErr(kind string, err error) (bool, error) {
	switch {
	case err == nil:
		return false, nil
	case apperr.Is(err, apperr.Duplicate):
		log.Warn().Err(err).Str("kind", kind).Msg("duplicate fake value, skipping")
		return true, nil
	default:
		return false, fmt.Errorf("seed %s: %w", kind, err)
	}
}

func fakePhone(f *gofakeit.Faker) *string {
	phone := f.Numerify("###########")
	return &phone
}

// fakeEmail prefixes the index so runs with small counts rarely collide.
func fakeEmail(f *gofakeit.Faker, kind string, i int) string {
	return fmt.Sprintf("%s%d.%s", kind, i, f.Email())
}

func fakeSecretary(f *gofakeit.Faker, i int) secretary.CreateInput {
	return secretary.CreateInput{
		Name:     f.Name(),
		Email:    fakeEmail(f, "sec", i),
		Password: f.Password(true, true, true, false, false, 12),
		Phone:    fakePhone(f),
	}
}

func fakeDoctor(f *gofakeit.Faker, i int) doctor.CreateInput {
	return doctor.CreateInput{
		Name:      "Dr(a). " + f.Name(),
		Email:     fakeEmail(f, "med", i),
		CRM:       f.Numerify("######"),
		Specialty: specialties[f.Number(0, len(specialties)-1)],
	}
}

func fakePatient(f *gofakeit.Faker, i int, now time.Time) patient.CreateInput {
	born := f.DateRange(now.AddDate(-90, 0, 0), now.AddDate(0, 0, -1))
	in := patient.CreateInput{
		Name:      f.Name(),
		Email:     fakeEmail(f, "pac", i),
		CPF:       f.Numerify("###########"),
		BirthDate: time.Date(born.Year(), born.Month(), born.Day(), 0, 0, 0, 0, time.UTC),
	}
	if f.Bool() {
		in.Phone = fakePhone(f)
	}
	return in
}

// fakeAppointment schedules on the hour, between tomorrow and 60 days out.
func fakeAppointment(f *gofakeit.Faker, patientIDs, doctorIDs []int64, now time.Time) appointment.CreateInput {
	day := now.AddDate(0, 0, f.Number(1, 60))
	at := time.Date(day.Year(), day.Month(), day.Day(), f.Number(8, 17), 0, 0, 0, time.UTC)
	in := appointment.CreateInput{
		ScheduledAt: at,
		PatientID:   patientIDs[f.Number(0, len(patientIDs)-1)],
		DoctorID:    doctorIDs[f.Number(0, len(doctorIDs)-1)],
	}
	if f.Bool() {
		reason := reasons[f.Number(0, len(reasons)-1)]
		in.Reason = &reason
	}
	return in
}
