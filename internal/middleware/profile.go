package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
	"github.com/lumilearn/lumilearn-backend/internal/store"
)

// ProfileHeader names the active profile; profile resolution itself
// (authentication, session handling) belongs to the hosting
// environment.
const ProfileHeader = "X-Profile-ID"

const profileContextKey = "profileID"

type ProfileMiddleware struct {
	log   *logger.Logger
	store *store.CoreStore

	mu          sync.Mutex
	lastProfile string
}

func NewProfileMiddleware(log *logger.Logger, coreStore *store.CoreStore) *ProfileMiddleware {
	return &ProfileMiddleware{
		log:   log.With("middleware", "ProfileMiddleware"),
		store: coreStore,
	}
}

// Require resolves the active profile from the request and invalidates
// the previous profile's cache when the active profile changes.
func (m *ProfileMiddleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := strings.TrimSpace(c.GetHeader(ProfileHeader))
		if profileID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": gin.H{"message": "missing " + ProfileHeader + " header", "code": "missing_profile"},
			})
			return
		}

		m.mu.Lock()
		if m.lastProfile != "" && m.lastProfile != profileID {
			m.store.ClearCache(m.lastProfile)
			m.log.Debug("Profile switched, cache invalidated", "previous", m.lastProfile, "current", profileID)
		}
		m.lastProfile = profileID
		m.mu.Unlock()

		c.Set(profileContextKey, profileID)
		c.Next()
	}
}

// ProfileID returns the profile resolved by Require.
func ProfileID(c *gin.Context) string {
	return c.GetString(profileContextKey)
}
