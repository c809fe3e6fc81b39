package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	domaincat "github.com/BruksfildServices01/barbershop-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

const popularLimit = 5

var (
	errServiceNotFound = httperr.NotFoundErr("service_not_found", "Service not found.")
	errStaffOnly       = httperr.Forbidden("staff_only", "Only barbers and admins can manage services.")
)

type ServiceInput struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	Active          *bool   `json:"active"`
}

type Service struct {
	repo  domaincat.Repository
	audit *audit.Dispatcher
}

func New(repo domaincat.Repository, dispatcher *audit.Dispatcher) *Service {
	return &Service{repo: repo, audit: dispatcher}
}

// List shows active services; staff may ask for inactive ones too.
func (s *Service) List(ctx context.Context, sess *account.Session, q domaincat.ListQuery) ([]models.Service, error) {
	if q.IncludeInactive && (sess == nil || !isStaff(*sess)) {
		q.IncludeInactive = false
	}
	return s.repo.ListServices(ctx, q)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Service, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *Service) Popular(ctx context.Context) ([]models.Service, error) {
	return s.repo.PopularServices(ctx, popularLimit)
}

func (s *Service) Create(ctx context.Context, sess account.Session, in ServiceInput) (*models.Service, error) {
	if !isStaff(sess) {
		return nil, errStaffOnly
	}

	svc := &models.Service{
		Name:            strings.TrimSpace(in.Name),
		Description:     strings.TrimSpace(in.Description),
		DurationMinutes: in.DurationMinutes,
		Price:           in.Price,
		Active:          in.Active == nil || *in.Active,
	}
	if err := domaincat.Validate(svc); err != nil {
		return nil, err
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	s.dispatch(sess, svc, "created")
	return svc, nil
}

func (s *Service) Update(ctx context.Context, sess account.Session, id uint, in ServiceInput) (*models.Service, error) {
	if !isStaff(sess) {
		return nil, errStaffOnly
	}
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.Name = strings.TrimSpace(in.Name)
	svc.Description = strings.TrimSpace(in.Description)
	svc.DurationMinutes = in.DurationMinutes
	svc.Price = in.Price
	if in.Active != nil {
		svc.Active = *in.Active
	}
	if err := domaincat.Validate(svc); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}

	s.dispatch(sess, svc, "updated")
	return svc, nil
}

// Deactivate hides a service from the catalog. Existing appointments keep
// referencing it.
func (s *Service) Deactivate(ctx context.Context, sess account.Session, id uint) error {
	if !isStaff(sess) {
		return errStaffOnly
	}
	svc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	svc.Active = false
	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return err
	}

	s.dispatch(sess, svc, "deactivated")
	return nil
}

func (s *Service) dispatch(sess account.Session, svc *models.Service, change string) {
	s.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(sess.UserID),
		Action:   audit.ActionServiceChanged,
		Entity:   "service",
		EntityID: audit.Ptr(svc.ID),
		Metadata: map[string]any{"change": change},
	})
}

func isStaff(sess account.Session) bool {
	return sess.IsBarber() || sess.IsAdmin()
}
