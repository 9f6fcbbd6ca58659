package doctor

import (
	"time"

	"github.com/douglasmeneses/clinica-api/pkg/optional"
)

type Doctor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	CRM       string    `json:"crm"`
	Specialty string    `json:"especialidade"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateInput struct {
	Name      string
	Email     string
	CRM       string
	Specialty string
}

// UpdateInput carries the fields of a partial update. Unset fields are left
// unchanged.
type UpdateInput struct {
	Name      optional.Value[string]
	Email     optional.Value[string]
	CRM       optional.Value[string]
	Specialty optional.Value[string]
}
