package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gigboard/internal/pkg/jwtutil"
	"gigboard/internal/session"
)

const testSecret = "test-secret"

func newGuardedRouter(store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", SessionAuth(testSecret, store), func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(500, gin.H{"error": "identity missing"})
			return
		}
		c.JSON(200, gin.H{"user_id": identity.UserID, "username": identity.Username})
	})
	return router
}

func issueToken(t *testing.T, store session.Store, userID uint, username string) string {
	t.Helper()
	rec := session.Record{ID: "sess-test", UserID: userID, Username: username, IssuedAt: time.Now()}
	if err := store.Put(context.Background(), rec); err != nil {
		t.Fatalf("put session failed: %v", err)
	}
	token, err := jwtutil.GenerateToken(testSecret, time.Hour, rec.ID, userID, username)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	return token
}

func TestSessionAuthRejectsMissingHeader(t *testing.T) {
	router := newGuardedRouter(session.NewMemoryStore(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSessionAuthRejectsBadScheme(t *testing.T) {
	router := newGuardedRouter(session.NewMemoryStore(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Basic abc123")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSessionAuthAdmitsLiveSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	router := newGuardedRouter(store)
	token := issueToken(t, store, 7, "alice")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
}

// A token that still parses must be rejected once its server-side record is
// gone: logout revokes immediately, regardless of the token's expiry.
func TestSessionAuthRejectsRevokedSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	router := newGuardedRouter(store)
	token := issueToken(t, store, 7, "alice")

	if err := store.Delete(context.Background(), "sess-test"); err != nil {
		t.Fatalf("delete session failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSessionAuthRejectsForgedToken(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	router := newGuardedRouter(store)

	forged, err := jwtutil.GenerateToken("attacker-secret", time.Hour, "sess-test", 7, "alice")
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
