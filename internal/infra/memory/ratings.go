package memory

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/rating"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

func (s *Store) CreateRating(_ context.Context, r *models.Rating) (models.BarberStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ratingKey{appointmentID: r.AppointmentID, raterID: r.RaterID}
	if _, exists := s.ratingKeys[key]; exists {
		return models.BarberStats{}, domain.ErrDuplicate
	}

	now := s.now()
	r.ID = s.nextID()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}

	stored := *r
	stored.Rater = models.User{}
	s.ratings[r.ID] = stored
	s.ratingKeys[key] = r.ID

	st, ok := s.stats[r.BarberID]
	if !ok {
		st = models.BarberStats{BarberID: r.BarberID}
	}
	st = rating.Fold(st, r.Score)
	st.UpdatedAt = now
	s.stats[r.BarberID] = st

	r.Rater = s.users[r.RaterID]
	return st, nil
}

func (s *Store) ListByRater(_ context.Context, raterID uint) ([]models.Rating, error) {
	return s.listRatings(func(r models.Rating) bool { return r.RaterID == raterID }, 0), nil
}

func (s *Store) ListByBarber(_ context.Context, barberID uint, limit int) ([]models.Rating, error) {
	return s.listRatings(func(r models.Rating) bool { return r.BarberID == barberID }, limit), nil
}

func (s *Store) listRatings(keep func(models.Rating) bool, limit int) []models.Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Rating
	for _, r := range s.ratings {
		if keep(r) {
			r.Rater = s.users[r.RaterID]
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *Store) ScoreDistribution(_ context.Context, barberID uint) (map[int]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dist := make(map[int]int64, rating.MaxScore)
	for score := rating.MinScore; score <= rating.MaxScore; score++ {
		dist[score] = 0
	}
	for _, r := range s.ratings {
		if r.BarberID == barberID {
			dist[r.Score]++
		}
	}
	return dist, nil
}

func (s *Store) GetBarberStats(_ context.Context, barberID uint) (models.BarberStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stats[barberID]
	if !ok {
		return models.BarberStats{BarberID: barberID}, nil
	}
	return st, nil
}
