package app

import "gigboard/internal/model"

// AuditStore reads back persisted audit entries.
type AuditStore interface {
	ListByActorID(actorID uint, limit int) ([]model.AuditLog, error)
}

type AuditService struct {
	audits AuditStore
}

func NewAuditService(audits AuditStore) *AuditService {
	return &AuditService{audits: audits}
}

// RecentActivity lists the caller's own post mutations, newest first.
func (s *AuditService) RecentActivity(actorID uint, limit int) ([]model.AuditLog, error) {
	if actorID == 0 {
		return nil, ErrInvalidInput
	}
	return s.audits.ListByActorID(actorID, limit)
}
