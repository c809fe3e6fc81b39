package memory

import (
	"context"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

func (s *Store) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.ID = s.nextID()
	if log.CreatedAt.IsZero() {
		log.CreatedAt = s.now()
	}
	s.auditLogs = append(s.auditLogs, *log)
	return nil
}

// ListAuditLogs returns newest first.
func (s *Store) ListAuditLogs(_ context.Context, q audit.ListQuery) ([]models.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AuditLog
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		l := s.auditLogs[i]
		if q.UserID != nil && (l.UserID == nil || *l.UserID != *q.UserID) {
			continue
		}
		if q.Action != "" && l.Action != q.Action {
			continue
		}
		out = append(out, l)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}
