package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

// --------------------------------------------------
// Users
// --------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username || strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}

	u.ID = s.nextID()
	stamp(&u.CreatedAt, &u.UpdatedAt, s.now())
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) UsernameOrEmailTaken(_ context.Context, username, email string) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var userTaken, emailTaken bool
	for _, u := range s.users {
		if u.Username == username {
			userTaken = true
		}
		if strings.EqualFold(u.Email, email) {
			emailTaken = true
		}
	}
	return userTaken, emailTaken, nil
}

func (s *Store) UpdateAvatar(_ context.Context, userID uint, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.AvatarURL = url
	u.UpdatedAt = s.now()
	s.users[userID] = u
	return nil
}

func (s *Store) SetUserActive(_ context.Context, userID uint, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Active = active
	u.UpdatedAt = s.now()
	s.users[userID] = u
	return nil
}

func (s *Store) ListBarbers(_ context.Context) ([]account.BarberProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []account.BarberProfile
	for _, u := range s.users {
		if u.Role != models.RoleBarber || !u.Active {
			continue
		}
		st, ok := s.stats[u.ID]
		if !ok {
			st = models.BarberStats{BarberID: u.ID}
		}
		out = append(out, account.BarberProfile{User: u, Stats: st})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User.ID < out[j].User.ID })
	return out, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (s *Store) ListWorkingHours(_ context.Context, barberID uint) ([]models.WorkingHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.workingHours[barberID]
	out := make([]models.WorkingHours, len(rows))
	copy(out, rows)
	return out, nil
}

func (s *Store) ReplaceWorkingHours(_ context.Context, barberID uint, days []models.WorkingHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rows := make([]models.WorkingHours, 0, len(days))
	for _, d := range days {
		d.ID = s.nextID()
		d.BarberID = barberID
		stamp(&d.CreatedAt, &d.UpdatedAt, now)
		rows = append(rows, d)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Weekday < rows[j].Weekday })
	s.workingHours[barberID] = rows
	return nil
}
