package app

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrContentTooLong    = errors.New("content is at maximum 255 characters")
	ErrUsernameExists    = errors.New("username already exists")
	ErrEmailExists       = errors.New("email already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrUserNotFound      = errors.New("user not found")
	ErrPostNotFound      = errors.New("post not found")
)
