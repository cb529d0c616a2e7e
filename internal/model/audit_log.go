package model

import "time"

// AuditLog records a post mutation. Rows are written asynchronously by the
// audit persist worker, not in the request path.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   uint      `gorm:"not null;index" json:"actor_id"`
	Action    string    `gorm:"size:32;not null" json:"action"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	AuditActionPostCreate = "post.create"
	AuditActionPostUpdate = "post.update"
	AuditActionPostDelete = "post.delete"
)
