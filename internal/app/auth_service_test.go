package app

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gigboard/internal/model"
	"gigboard/internal/pkg/jwtutil"
	"gigboard/internal/repository"
	"gigboard/internal/session"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.AuditLog{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func newAuthService(t *testing.T) (*AuthService, *session.MemoryStore) {
	t.Helper()
	db := newTestDB(t)
	sessions := session.NewMemoryStore(time.Hour)
	svc := NewAuthService(repository.NewUserRepository(db), sessions, testSecret, time.Hour)
	return svc, sessions
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	result, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if result.User.PasswordHash == "password1" {
		t.Fatal("plaintext password was persisted")
	}
	if !VerifyPassword(result.User, "password1") {
		t.Fatal("correct password does not verify")
	}
	if VerifyPassword(result.User, "wrong") {
		t.Fatal("wrong password verifies")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"short password", RegisterInput{Username: "bob", Email: "b@x.com", Password: "short"}, ErrInvalidInput},
		{"empty username", RegisterInput{Username: "", Email: "b@x.com", Password: "password1"}, ErrInvalidInput},
		{"malformed email", RegisterInput{Username: "bob", Email: "not-an-email", Password: "password1"}, ErrInvalidInput},
	}
	for _, tc := range cases {
		if _, err := svc.Register(ctx, tc.input); err != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	if _, err := svc.Register(ctx, RegisterInput{Username: "carol", Email: "c@x.com", Password: "password1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "carol", Email: "other@x.com", Password: "password1"}); err != ErrUsernameExists {
		t.Errorf("duplicate username: got %v, want %v", err, ErrUsernameExists)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "dave", Email: "c@x.com", Password: "password1"}); err != ErrEmailExists {
		t.Errorf("duplicate email: got %v, want %v", err, ErrEmailExists)
	}
}

func TestLoginVerifiesCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", Password: "password1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "password1"}); err != nil {
		t.Fatalf("login with correct password failed: %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "wrongwrong"}); err != ErrInvalidCredential {
		t.Fatalf("login with wrong password: got %v, want %v", err, ErrInvalidCredential)
	}
	if _, err := svc.Login(ctx, LoginInput{Username: "nobody", Password: "password1"}); err != ErrInvalidCredential {
		t.Fatalf("login with unknown user: got %v, want %v", err, ErrInvalidCredential)
	}
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", Password: "password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	oldHash := result.User.PasswordHash

	newPassword := "password2"
	updated, err := svc.UpdateProfile(ctx, result.User.ID, UpdateProfileInput{Password: &newPassword})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}

	if updated.PasswordHash == oldHash {
		t.Fatal("password hash unchanged after password update")
	}
	if updated.PasswordHash == newPassword {
		t.Fatal("plaintext password was persisted on update")
	}
	if VerifyPassword(updated, "password1") {
		t.Fatal("old password still verifies after update")
	}
	if !VerifyPassword(updated, "password2") {
		t.Fatal("new password does not verify")
	}
}

func TestUpdateProfileMissingUser(t *testing.T) {
	svc, _ := newAuthService(t)

	name := "Nobody"
	if _, err := svc.UpdateProfile(context.Background(), 999, UpdateProfileInput{Name: &name}); err != ErrUserNotFound {
		t.Fatalf("got %v, want %v", err, ErrUserNotFound)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, sessions := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", Password: "password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims, err := jwtutil.ParseToken(testSecret, result.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if _, err := sessions.Get(ctx, claims.SessionID); err != nil {
		t.Fatalf("session record missing after register: %v", err)
	}

	if err := svc.Logout(ctx, claims.SessionID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := sessions.Get(ctx, claims.SessionID); err != session.ErrNotFound {
		t.Fatalf("session still resolvable after logout: %v", err)
	}
}
