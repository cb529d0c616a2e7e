// Package session holds the server-side session records behind the
// authentication middleware. A token is only honored while its record is
// still present here, so logout revokes access immediately.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Record maps a session id to the identity that logged in.
type Record struct {
	ID       string    `json:"id"`
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issued_at"`
}

type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
}
