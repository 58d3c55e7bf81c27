package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
	"github.com/lumilearn/lumilearn-backend/internal/storage"
	"github.com/lumilearn/lumilearn-backend/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *ProfileMiddleware) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New failed: %v", err)
	}
	coreStore := store.NewCoreStore(storage.NewMemoryAdapter(), log)
	m := NewProfileMiddleware(log, coreStore)

	router := gin.New()
	router.GET("/probe", m.Require(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"profileId": ProfileID(c)})
	})
	return router, m
}

func TestRequireRejectsMissingHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d without header, want 400", rec.Code)
	}
}

func TestRequireResolvesProfile(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(ProfileHeader, "alice")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body != `{"profileId":"alice"}` {
		t.Fatalf("body=%s", body)
	}
}

func TestRequireTracksProfileSwitch(t *testing.T) {
	router, m := newTestRouter(t)

	for _, profile := range []string{"alice", "bob"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(ProfileHeader, profile)
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status=%d for %s, want 200", rec.Code, profile)
		}
	}

	m.mu.Lock()
	last := m.lastProfile
	m.mu.Unlock()
	if last != "bob" {
		t.Fatalf("lastProfile=%q after switch, want bob", last)
	}
}
