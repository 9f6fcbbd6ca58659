package secretary

import "context"

// Repository persists secretaries. Every read returns the public projection;
// only credentialByEmail touches the stored hash.
type Repository interface {
	Create(ctx context.Context, s *Secretary, passwordHash string) error
	GetByID(ctx context.Context, id int64) (*Secretary, error)
	List(ctx context.Context) ([]*Secretary, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Secretary, error)
	Delete(ctx context.Context, id int64) (*Secretary, error)
	credentialByEmail(ctx context.Context, email string) (*credential, error)
}
