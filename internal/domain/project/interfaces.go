package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	GetByName(ctx context.Context, name string) (*Project, error)
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Summary, error)
	ListByManager(ctx context.Context, managerNRIC string) ([]Project, error)
	ToggleVisibility(ctx context.Context, id string) (bool, error)
	// LiveReferenceCount counts non-terminal applications and
	// registrations still pointing at the project.
	LiveReferenceCount(ctx context.Context, id string) (int, error)
}
