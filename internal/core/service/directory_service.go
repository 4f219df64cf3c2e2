package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/homeharbor/harbor-api/internal/core/domain"
	"github.com/homeharbor/harbor-api/internal/core/ports"
)

type DirectoryService struct {
	repo ports.ApartmentRepository
}

func NewDirectoryService(repo ports.ApartmentRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

// List returns apartments matching filter, sorted by floor then unit number.
// Search matches the unit number or the resident's name, case-insensitively.
func (s *DirectoryService) List(ctx context.Context, filter ports.DirectoryFilter) ([]domain.Apartment, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list directory: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]domain.Apartment, 0, len(all))
	for _, apt := range all {
		if !matchesSearch(apt, search) {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(apt.Status) != filter.Status {
			continue
		}
		if filter.Floor != "" && filter.Floor != "all" && apt.Floor != filter.Floor {
			continue
		}
		out = append(out, visibleTo(apt, filter.Role))
	}

	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := atoi(out[i].Floor), atoi(out[j].Floor)
		if fi != fj {
			return fi < fj
		}
		return atoi(out[i].Number) < atoi(out[j].Number)
	})
	return out, nil
}

func (s *DirectoryService) Get(ctx context.Context, id string, role domain.Role) (*domain.Apartment, error) {
	apt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := visibleTo(*apt, role)
	return &out, nil
}

func (s *DirectoryService) Stats(ctx context.Context) (ports.DirectoryStats, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return ports.DirectoryStats{}, fmt.Errorf("directory stats: %w", err)
	}
	stats := ports.DirectoryStats{Total: len(all)}
	for _, apt := range all {
		switch apt.Status {
		case domain.StatusOccupied:
			stats.Occupied++
		case domain.StatusVacant:
			stats.Vacant++
		}
	}
	return stats, nil
}

func matchesSearch(apt domain.Apartment, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(apt.Number), search) {
		return true
	}
	return apt.Resident != nil && strings.Contains(strings.ToLower(apt.Resident.Name), search)
}

// visibleTo hides resident contact details from other residents.
func visibleTo(apt domain.Apartment, role domain.Role) domain.Apartment {
	if apt.Resident == nil {
		return apt
	}
	r := *apt.Resident
	if role != domain.RoleAdmin && role != domain.RoleStaff {
		r = domain.Resident{Name: r.Name}
	}
	apt.Resident = &r
	return apt
}

// atoi treats non-numeric values as zero so they sort first.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
