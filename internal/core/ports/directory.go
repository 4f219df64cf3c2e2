package ports

import (
	"context"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

// ApartmentRepository exposes the building's units.
type ApartmentRepository interface {
	All(ctx context.Context) ([]domain.Apartment, error)
	FindByID(ctx context.Context, id string) (*domain.Apartment, error)
}

// DirectoryFilter narrows a directory listing. Empty or "all" means no filter.
type DirectoryFilter struct {
	Search string
	Status string
	Floor  string
	// Role controls whether resident contact details are included.
	Role domain.Role
}

// DirectoryStats summarises occupancy.
type DirectoryStats struct {
	Total    int `json:"total"`
	Occupied int `json:"occupied"`
	Vacant   int `json:"vacant"`
}

// DirectoryService lists and looks up apartments.
type DirectoryService interface {
	List(ctx context.Context, filter DirectoryFilter) ([]domain.Apartment, error)
	Get(ctx context.Context, id string, role domain.Role) (*domain.Apartment, error)
	Stats(ctx context.Context) (DirectoryStats, error)
}
