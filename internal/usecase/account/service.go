package account

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/auth"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	domainacc "github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/validators"
)

var (
	errUserNotFound       = httperr.NotFoundErr("user_not_found", "User not found.")
	errInvalidCredentials = httperr.New(httperr.KindUnauthorized, "invalid_credentials", "Invalid username or password.")
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Username  string      `json:"username" validate:"required,min=3,max=150"`
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=6"`
	Role      models.Role `json:"role" validate:"omitempty,oneof=client barber"`
	FirstName string      `json:"first_name" validate:"max=100"`
	LastName  string      `json:"last_name" validate:"max=100"`
	Phone     string      `json:"phone_number" validate:"max=20"`
}

// ======================================================
// USE CASE
// ======================================================

type Service struct {
	repo   domainacc.Repository
	tokens *auth.Tokens
	avatar AvatarStore
	audit  *audit.Dispatcher
	log    *zap.Logger

	// checkEmail validates the e-mail domain; nil skips the check.
	checkEmail func(email string) bool
}

type Option func(*Service)

func WithAvatarStore(a AvatarStore) Option { return func(s *Service) { s.avatar = a } }

func WithEmailCheck(f func(string) bool) Option { return func(s *Service) { s.checkEmail = f } }

func WithAudit(d *audit.Dispatcher) Option { return func(s *Service) { s.audit = d } }

func New(repo domainacc.Repository, tokens *auth.Tokens, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		repo:   repo,
		tokens: tokens,
		log:    log.With(zap.String("component", "accounts")),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = models.RoleClient
	}

	if err := validators.Struct(in); err != nil {
		return nil, "", err
	}
	if s.checkEmail != nil && !s.checkEmail(in.Email) {
		return nil, "", httperr.Validation("invalid_email_domain", "The e-mail domain does not look valid.")
	}

	userTaken, emailTaken, err := s.repo.UsernameOrEmailTaken(ctx, in.Username, in.Email)
	if err != nil {
		return nil, "", err
	}
	if userTaken {
		return nil, "", httperr.Duplicate("username_taken", "Username is already taken.")
	}
	if emailTaken {
		return nil, "", httperr.Duplicate("email_taken", "E-mail is already registered.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         in.Role,
		Active:       true,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, "", httperr.Duplicate("username_taken", "Username or e-mail is already registered.")
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered", zap.Uint("user_id", u.ID), zap.String("role", string(u.Role)))
	s.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(u.ID),
		Action:   audit.ActionUserRegistered,
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
	})
	return u, token, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	u, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", errInvalidCredentials
		}
		return nil, "", err
	}
	if !u.Active || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", errInvalidCredentials
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Me(ctx context.Context, sess domainacc.Session) (*models.User, error) {
	u, err := s.repo.GetUser(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ToggleActive flips a user's active flag. Inactive users cannot log in
// and inactive barbers drop out of the listing and cannot be booked.
func (s *Service) ToggleActive(ctx context.Context, sess domainacc.Session, userID uint) (*models.User, error) {
	if !sess.IsAdmin() {
		return nil, httperr.Forbidden("admins_only", "Only admins can toggle profile status.")
	}

	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}

	u.Active = !u.Active
	if err := s.repo.SetUserActive(ctx, u.ID, u.Active); err != nil {
		return nil, err
	}

	s.log.Info("user active toggled", zap.Uint("user_id", u.ID), zap.Bool("active", u.Active), zap.Uint("by", sess.UserID))
	s.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(sess.UserID),
		Action:   audit.ActionUserActiveToggled,
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
		Metadata: map[string]any{"active": u.Active},
	})
	return u, nil
}

func (s *Service) Barbers(ctx context.Context) ([]domainacc.BarberProfile, error) {
	return s.repo.ListBarbers(ctx)
}
