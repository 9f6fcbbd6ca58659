package appointment

import (
	"time"

	"github.com/douglasmeneses/clinica-api/internal/domain/doctor"
	"github.com/douglasmeneses/clinica-api/internal/domain/patient"
	"github.com/douglasmeneses/clinica-api/pkg/optional"
)

type Appointment struct {
	ID          int64     `json:"id"`
	ScheduledAt time.Time `json:"dataHora"`
	PatientID   int64     `json:"pacienteId"`
	DoctorID    int64     `json:"medicoId"`
	Reason      *string   `json:"motivo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PatientSummary struct {
	Name string `json:"nome"`
	CPF  string `json:"cpf"`
}

type DoctorSummary struct {
	Name      string `json:"nome"`
	Specialty string `json:"especialidade"`
}

// Summary is a listed appointment with a narrow projection of its parties.
type Summary struct {
	Appointment
	Patient PatientSummary `json:"paciente"`
	Doctor  DoctorSummary  `json:"medico"`
}

// Detail is a single appointment with the full patient and doctor records.
type Detail struct {
	Appointment
	Patient patient.Patient `json:"paciente"`
	Doctor  doctor.Doctor   `json:"medico"`
}

type CreateInput struct {
	ScheduledAt time.Time
	PatientID   int64
	DoctorID    int64
	Reason      *string
}

// UpdateInput cannot move an appointment to another patient or doctor.
type UpdateInput struct {
	ScheduledAt optional.Value[time.Time]
	Reason      optional.Value[string]
}
