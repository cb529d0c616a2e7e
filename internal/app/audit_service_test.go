package app

import (
	"testing"

	"gigboard/internal/model"
	"gigboard/internal/repository"
)

func TestRecentActivityIsActorScoped(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAuditLogRepository(db)
	svc := NewAuditService(repo)

	entries := []model.AuditLog{
		{ActorID: 1, Action: model.AuditActionPostCreate, PostID: 10},
		{ActorID: 1, Action: model.AuditActionPostDelete, PostID: 10},
		{ActorID: 2, Action: model.AuditActionPostCreate, PostID: 11},
	}
	for i := range entries {
		if err := repo.Create(&entries[i]); err != nil {
			t.Fatalf("seed audit entry failed: %v", err)
		}
	}

	got, err := svc.RecentActivity(1, 50)
	if err != nil {
		t.Fatalf("recent activity failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	for _, e := range got {
		if e.ActorID != 1 {
			t.Fatalf("entry for actor %d leaked into actor 1's activity", e.ActorID)
		}
	}

	if _, err := svc.RecentActivity(0, 50); err != ErrInvalidInput {
		t.Fatalf("got %v, want %v", err, ErrInvalidInput)
	}
}
