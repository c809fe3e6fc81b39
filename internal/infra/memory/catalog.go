package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

func (s *Store) ListServices(_ context.Context, q catalog.ListQuery) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(q.Search))

	var out []models.Service
	for _, svc := range s.services {
		if !svc.Active && !q.IncludeInactive {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(svc.Name), search) &&
			!strings.Contains(strings.ToLower(svc.Description), search) {
			continue
		}
		out = append(out, svc)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch q.OrderBy {
		case "price":
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case "-price":
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case "duration_minutes":
			if a.DurationMinutes != b.DurationMinutes {
				return a.DurationMinutes < b.DurationMinutes
			}
		default:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (s *Store) GetService(_ context.Context, id uint) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &svc, nil
}

func (s *Store) CreateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = s.nextID()
	stamp(&svc.CreatedAt, &svc.UpdatedAt, s.now())
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) UpdateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[svc.ID]; !ok {
		return domain.ErrNotFound
	}
	svc.UpdatedAt = s.now()
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) PopularServices(_ context.Context, limit int) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[uint]int)
	for _, ap := range s.appointments {
		if ap.Active {
			counts[ap.ServiceID]++
		}
	}

	var out []models.Service
	for _, svc := range s.services {
		if svc.Active {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := counts[out[i].ID], counts[out[j].ID]
		if ci != cj {
			return ci > cj
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
