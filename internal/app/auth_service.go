package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gigboard/internal/model"
	"gigboard/internal/pkg/jwtutil"
	"gigboard/internal/session"
)

// UserStore is the persistence capability AuthService needs. The gorm-backed
// repository satisfies it; tests may substitute any other implementation.
type UserStore interface {
	Create(user *model.User) error
	Save(user *model.User) error
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
}

type AuthService struct {
	users       UserStore
	sessions    session.Store
	tokenSecret string
	sessionTTL  time.Duration
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	Name        string
	ContactInfo string
}

type LoginInput struct {
	Username string
	Password string
}

type UpdateProfileInput struct {
	Username    *string
	Email       *string
	Password    *string
	Name        *string
	ContactInfo *string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(users UserStore, sessions session.Store, tokenSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		sessions:    sessions,
		tokenSecret: tokenSecret,
		sessionTTL:  sessionTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if username == "" || email == "" || len(password) < 8 {
		return nil, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidInput
	}

	existingByName, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existingByName != nil {
		return nil, ErrUsernameExists
	}

	existingByEmail, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existingByEmail != nil {
		return nil, ErrEmailExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		ContactInfo:  strings.TrimSpace(input.ContactInfo),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return s.openSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}
	if !VerifyPassword(user, password) {
		return nil, ErrInvalidCredential
	}

	return s.openSession(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.users.GetByID(id)
}

// UpdateProfile applies the supplied fields to an existing user. A password
// change goes through the same hashing step as registration, so plaintext
// never reaches the store.
func (s *AuthService) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, ErrInvalidInput
		}
		if username != user.Username {
			existing, err := s.users.GetByUsername(username)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrUsernameExists
			}
			user.Username = username
		}
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, ErrInvalidInput
		}
		if email != user.Email {
			existing, err := s.users.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrEmailExists
			}
			user.Email = email
		}
	}

	if input.Password != nil {
		password := strings.TrimSpace(*input.Password)
		if len(password) < 8 {
			return nil, ErrInvalidInput
		}
		hash, err := HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.ContactInfo != nil {
		user.ContactInfo = strings.TrimSpace(*input.ContactInfo)
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// HashPassword is the single hashing step used on both registration and
// profile update. bcrypt.DefaultCost is the work factor 10 the board has
// always used.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

func VerifyPassword(user *model.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(candidate)) == nil
}

func (s *AuthService) openSession(ctx context.Context, user *model.User) (*AuthResult, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return nil, err
	}

	rec := session.Record{
		ID:       sessionID,
		UserID:   user.ID,
		Username: user.Username,
		IssuedAt: time.Now(),
	}
	if err := s.sessions.Put(ctx, rec); err != nil {
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.tokenSecret, s.sessionTTL, sessionID, user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id failed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
