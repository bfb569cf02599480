package identity

import "context"

// Repository provides persistence for people.
type Repository interface {
	Create(ctx context.Context, p *Person) error
	Get(ctx context.Context, nric string) (*Person, error)
	FindByName(ctx context.Context, name string) (*Person, error)
	List(ctx context.Context, role Role) ([]Person, error)
}
