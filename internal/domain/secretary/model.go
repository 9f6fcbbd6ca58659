package secretary

import (
	"time"

	"github.com/douglasmeneses/clinica-api/pkg/optional"
)

// Secretary is the public projection. The password hash lives only in
// credential and never leaves this package.
type Secretary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Phone     *string   `json:"telefone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
}

// UpdateInput has no password field; credentials are not changed through
// profile updates.
type UpdateInput struct {
	Name  optional.Value[string]
	Email optional.Value[string]
	Phone optional.Value[string]
}

type credential struct {
	SecretaryID int64
	Hash        string
}
