package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type ListQuery struct {
	UserID *uint
	Action string
	Limit  int
}

type Store interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	ListAuditLogs(ctx context.Context, q ListQuery) ([]models.AuditLog, error)
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		CreatedAt: time.Now(),
	}

	return l.store.CreateAuditLog(ctx, &log)
}

func (l *Logger) List(ctx context.Context, q ListQuery) ([]models.AuditLog, error) {
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
	return l.store.ListAuditLogs(ctx, q)
}
