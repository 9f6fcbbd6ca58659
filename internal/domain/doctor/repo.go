package doctor

import "context"

// Repository persists doctors. GetByID returns (nil, nil) when the doctor
// does not exist; Update and Delete return db.ErrRecordNotFound instead.
type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	List(ctx context.Context) ([]*Doctor, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Doctor, error)
	Delete(ctx context.Context, id int64) (*Doctor, error)
	// Exists locks the row against deletion until the surrounding
	// transaction ends.
	Exists(ctx context.Context, id int64) (bool, error)
}
