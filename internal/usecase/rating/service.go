package rating

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	ledger "github.com/BruksfildServices01/barbershop-scheduler/internal/domain/rating"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/metrics"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/validators"
)

const recentLimit = 5

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SubmitInput struct {
	AppointmentID uint   `json:"appointment_id" validate:"required"`
	Score         int    `json:"score"`
	Comment       string `json:"comment" validate:"max=2000"`
}

type BarberSummary struct {
	BarberID      uint            `json:"barber_id"`
	AverageRating float64         `json:"average_rating"`
	TotalRatings  int64           `json:"total_ratings"`
	Distribution  map[int]int64   `json:"rating_distribution"`
	Recent        []models.Rating `json:"recent_ratings"`
}

// ======================================================
// USE CASE
// ======================================================

type Service struct {
	repo    ledger.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Collector
	log     *zap.Logger
}

func New(repo ledger.Repository, dispatcher *audit.Dispatcher, m *metrics.Collector, log *zap.Logger) *Service {
	if m == nil {
		m = metrics.NewCollector()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		audit:   dispatcher,
		metrics: m,
		log:     log.With(zap.String("component", "ratings")),
	}
}

// Submit records the caller's rating of a completed appointment and folds
// it into the barber's aggregate.
func (s *Service) Submit(ctx context.Context, sess account.Session, in SubmitInput) (*models.Rating, models.BarberStats, error) {
	if err := ledger.ValidateScore(in.Score); err != nil {
		return nil, models.BarberStats{}, err
	}
	if err := validators.Struct(in); err != nil {
		return nil, models.BarberStats{}, err
	}

	ap, err := s.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, models.BarberStats{}, httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
		}
		return nil, models.BarberStats{}, err
	}
	if ap.ClientID != sess.UserID {
		return nil, models.BarberStats{}, httperr.Forbidden("not_your_appointment", "You can only rate your own appointments.")
	}
	if ap.Status != models.StatusCompleted {
		return nil, models.BarberStats{}, httperr.InvalidState("not_completed", "You can only rate completed appointments.")
	}

	r := &models.Rating{
		AppointmentID: ap.ID,
		RaterID:       sess.UserID,
		BarberID:      ap.BarberID,
		Score:         in.Score,
		Comment:       strings.TrimSpace(in.Comment),
	}
	stats, err := s.repo.CreateRating(ctx, r)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, models.BarberStats{}, httperr.Duplicate("already_rated", "You have already rated this appointment.")
		}
		return nil, models.BarberStats{}, err
	}

	s.metrics.RatingsTotal.Inc()
	s.log.Info("rating submitted",
		zap.Uint("rating_id", r.ID),
		zap.Uint("barber_id", r.BarberID),
		zap.Int("score", r.Score),
		zap.Float64("average", stats.AverageRating),
		zap.Int64("total", stats.TotalRatings),
	)
	s.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(sess.UserID),
		Action:   audit.ActionRatingSubmitted,
		Entity:   "rating",
		EntityID: audit.Ptr(r.ID),
		Metadata: map[string]any{"appointment_id": ap.ID, "score": r.Score},
	})

	return r, stats, nil
}

func (s *Service) MyRatings(ctx context.Context, sess account.Session) ([]models.Rating, error) {
	return s.repo.ListByRater(ctx, sess.UserID)
}

func (s *Service) BarberStats(ctx context.Context, barberID uint) (*BarberSummary, error) {
	u, err := s.repo.GetUser(ctx, barberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("barber_not_found", "Barber not found.")
		}
		return nil, err
	}
	if u.Role != models.RoleBarber {
		return nil, httperr.NotFoundErr("barber_not_found", "Barber not found.")
	}

	stats, err := s.repo.GetBarberStats(ctx, barberID)
	if err != nil {
		return nil, err
	}
	dist, err := s.repo.ScoreDistribution(ctx, barberID)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.ListByBarber(ctx, barberID, recentLimit)
	if err != nil {
		return nil, err
	}

	return &BarberSummary{
		BarberID:      barberID,
		AverageRating: ledger.Round2(stats.AverageRating),
		TotalRatings:  stats.TotalRatings,
		Distribution:  dist,
		Recent:        recent,
	}, nil
}
