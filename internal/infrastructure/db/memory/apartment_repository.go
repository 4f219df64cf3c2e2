package memory

import (
	"context"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

// ApartmentRepository serves a fixed set of units. It is read-only.
type ApartmentRepository struct {
	apartments []domain.Apartment
}

// NewApartmentRepository returns a repository over apts. When apts is nil the
// demo building is used.
func NewApartmentRepository(apts []domain.Apartment) *ApartmentRepository {
	if apts == nil {
		apts = SeedApartments()
	}
	return &ApartmentRepository{apartments: apts}
}

func (r *ApartmentRepository) All(_ context.Context) ([]domain.Apartment, error) {
	out := make([]domain.Apartment, len(r.apartments))
	for i, apt := range r.apartments {
		out[i] = cloneApartment(apt)
	}
	return out, nil
}

func (r *ApartmentRepository) FindByID(_ context.Context, id string) (*domain.Apartment, error) {
	for _, apt := range r.apartments {
		if apt.ID == id {
			clone := cloneApartment(apt)
			return &clone, nil
		}
	}
	return nil, domain.ErrApartmentNotFound
}

func cloneApartment(a domain.Apartment) domain.Apartment {
	if a.Resident != nil {
		r := *a.Resident
		a.Resident = &r
	}
	return a
}
