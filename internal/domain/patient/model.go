package patient

import (
	"time"

	"github.com/douglasmeneses/clinica-api/pkg/optional"
)

type Patient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	Phone     *string   `json:"telefone"`
	BirthDate time.Time `json:"dataNascimento"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateInput struct {
	Name      string
	Email     string
	CPF       string
	Phone     *string
	BirthDate time.Time
}

type UpdateInput struct {
	Name      optional.Value[string]
	Email     optional.Value[string]
	CPF       optional.Value[string]
	Phone     optional.Value[string]
	BirthDate optional.Value[time.Time]
}

// dateOnly drops the clock part, keeping the calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
