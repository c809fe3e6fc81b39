package account

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainacc "github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/media"
)

// ErrAvatarStorageDisabled is returned when no object storage is configured.
var ErrAvatarStorageDisabled = errors.New("avatar storage is not configured")

type AvatarStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

func (s *Service) UpdateAvatar(ctx context.Context, sess domainacc.Session, r io.Reader) (string, error) {
	if !sess.IsBarber() {
		return "", httperr.Forbidden("barbers_only", "Only barbers can upload an avatar.")
	}
	if s.avatar == nil {
		return "", ErrAvatarStorageDisabled
	}

	body, err := media.Avatar(r, media.MaxAvatarSide)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			return "", httperr.Validation("invalid_image", "Upload a JPEG, PNG or WebP image.")
		}
		return "", err
	}

	key := fmt.Sprintf("avatars/%d/%s.webp", sess.UserID, uuid.NewString())
	url, err := s.avatar.Put(ctx, key, body, media.ContentType)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateAvatar(ctx, sess.UserID, url); err != nil {
		return "", err
	}

	s.log.Info("avatar updated", zap.Uint("user_id", sess.UserID), zap.String("key", key))
	return url, nil
}
