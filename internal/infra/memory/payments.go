package memory

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

func (s *Store) CreatePayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[p.AppointmentID]; !ok {
		return domain.ErrNotFound
	}
	p.ID = s.nextID()
	stamp(&p.CreatedAt, &p.UpdatedAt, s.now())

	stored := *p
	stored.Appointment = models.Appointment{}
	s.payments[p.ID] = stored
	return nil
}

func (s *Store) GetPayment(_ context.Context, id uint) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Appointment = s.appointments[p.AppointmentID]
	return &p, nil
}

func (s *Store) UpdatePayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[p.ID]; !ok {
		return domain.ErrNotFound
	}
	p.UpdatedAt = s.now()

	stored := *p
	stored.Appointment = models.Appointment{}
	s.payments[p.ID] = stored
	return nil
}

func (s *Store) PaymentStats(_ context.Context, q payment.ListQuery) (payment.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st payment.Stats
	for _, p := range s.payments {
		ap := s.appointments[p.AppointmentID]
		if q.ClientID != nil && ap.ClientID != *q.ClientID {
			continue
		}
		if q.BarberID != nil && ap.BarberID != *q.BarberID {
			continue
		}
		st.TotalPayments++
		st.TotalAmount += p.Amount
		switch p.Status {
		case models.PaymentPending:
			st.Pending++
		case models.PaymentCompleted:
			st.Completed++
		case models.PaymentRefunded:
			st.Refunded++
		}
	}
	return st, nil
}

func (s *Store) ListPayments(_ context.Context, q payment.ListQuery) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Payment
	for _, p := range s.payments {
		ap := s.appointments[p.AppointmentID]
		if q.ClientID != nil && ap.ClientID != *q.ClientID {
			continue
		}
		if q.BarberID != nil && ap.BarberID != *q.BarberID {
			continue
		}
		p.Appointment = ap
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
