package payment

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	domainpay "github.com/BruksfildServices01/barbershop-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	infrapay "github.com/BruksfildServices01/barbershop-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/metrics"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

var (
	errAppointmentNotFound = httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	errPaymentNotFound     = httperr.NotFoundErr("payment_not_found", "Payment not found.")
)

type Service struct {
	repo     domainpay.Repository
	provider infrapay.Provider
	currency string
	clock    calendar.Clock
	audit    *audit.Dispatcher
	metrics  *metrics.Collector
	log      *zap.Logger
}

func New(
	repo domainpay.Repository,
	provider infrapay.Provider,
	currency string,
	clock calendar.Clock,
	dispatcher *audit.Dispatcher,
	m *metrics.Collector,
	log *zap.Logger,
) *Service {
	if provider == nil {
		provider = infrapay.Manual{}
	}
	if clock == nil {
		clock = calendar.RealClock{}
	}
	if m == nil {
		m = metrics.NewCollector()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		provider: provider,
		currency: currency,
		clock:    clock,
		audit:    dispatcher,
		metrics:  m,
		log:      log.With(zap.String("component", "payments")),
	}
}

// Create opens a pending payment for the service price of an appointment
// and asks the provider for a checkout.
func (s *Service) Create(ctx context.Context, sess account.Session, appointmentID uint) (*models.Payment, error) {
	ap, err := s.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errAppointmentNotFound
		}
		return nil, err
	}
	if !sess.IsAdmin() && ap.ClientID != sess.UserID {
		return nil, httperr.Forbidden("forbidden", "You can only pay for your own appointments.")
	}
	if ap.Status == models.StatusCanceled {
		return nil, httperr.InvalidState("invalid_state", "Canceled appointments cannot be paid.")
	}

	p := &models.Payment{
		AppointmentID: ap.ID,
		Amount:        ap.Service.Price,
		Currency:      s.currency,
		Status:        models.PaymentPending,
		Provider:      s.provider.Name(),
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	checkout, err := s.provider.CreateCheckout(ctx, infrapay.CheckoutRequest{
		Reference: fmt.Sprintf("payment-%d", p.ID),
		Title:     ap.Service.Name,
		Amount:    p.Amount,
		Currency:  p.Currency,
	})
	if err != nil {
		s.metrics.PaymentsTotal.WithLabelValues(p.Provider, "checkout_failed").Inc()
		s.log.Error("checkout failed", zap.Uint("payment_id", p.ID), zap.Error(err))
		return nil, httperr.New(httperr.KindConflict, "payment_provider_unavailable", "Payment provider is unavailable, try again later.")
	}

	p.ProviderRef = checkout.ProviderRef
	p.CheckoutURL = checkout.URL
	if err := s.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	s.metrics.PaymentsTotal.WithLabelValues(p.Provider, "created").Inc()
	s.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(sess.UserID),
		Action:   audit.ActionPaymentCreated,
		Entity:   "payment",
		EntityID: audit.Ptr(p.ID),
		Metadata: map[string]any{"appointment_id": ap.ID, "amount": p.Amount},
	})
	return p, nil
}

func (s *Service) List(ctx context.Context, sess account.Session) ([]models.Payment, error) {
	return s.repo.ListPayments(ctx, scope(sess))
}

// Stats sums the payments the caller can see.
func (s *Service) Stats(ctx context.Context, sess account.Session) (domainpay.Stats, error) {
	return s.repo.PaymentStats(ctx, scope(sess))
}

func scope(sess account.Session) domainpay.ListQuery {
	var q domainpay.ListQuery
	switch sess.Role {
	case models.RoleAdmin:
	case models.RoleBarber:
		id := sess.UserID
		q.BarberID = &id
	default:
		id := sess.UserID
		q.ClientID = &id
	}
	return q
}

// MarkPaid settles a pending payment. Only the appointment's barber or an
// admin may do it.
func (s *Service) MarkPaid(ctx context.Context, sess account.Session, id uint) (*models.Payment, error) {
	p, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errPaymentNotFound
		}
		return nil, err
	}
	if !sess.IsAdmin() && !(sess.IsBarber() && p.Appointment.BarberID == sess.UserID) {
		return nil, httperr.Forbidden("forbidden", "Only the barber or an admin can mark payments as paid.")
	}

	if err := domainpay.MarkPaid(p, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	s.metrics.PaymentsTotal.WithLabelValues(p.Provider, "paid").Inc()
	s.log.Info("payment marked as paid", zap.Uint("payment_id", p.ID), zap.Uint("by", sess.UserID))
	s.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(sess.UserID),
		Action:   audit.ActionPaymentPaid,
		Entity:   "payment",
		EntityID: audit.Ptr(p.ID),
	})
	return p, nil
}
