package auth

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/logging"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/users"
)

// DevUserID is the owner assumed by header auth when X-User-Id is absent.
const DevUserID = "demo-user"

// TokenVerifier is satisfied by *firebase.google.com/go/v4/auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// UserEnsurer upserts the caller and returns its database id.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, u users.UpsertUser) (string, error)
}

// FirebaseAuth validates the Bearer ID token and records the caller.
func FirebaseAuth(verifier TokenVerifier, ensurer UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			logging.FromContext(c.Request.Context(), nil).Info("rejected id token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		u := users.UpsertUser{FirebaseUID: decoded.UID}
		if email, ok := decoded.Claims["email"].(string); ok {
			u.Email = email
		}
		if name, ok := decoded.Claims["name"].(string); ok {
			u.DisplayName = name
		}
		if pic, ok := decoded.Claims["picture"].(string); ok {
			u.PhotoURL = pic
		}

		ensure(c, ensurer, u)
	}
}

// HeaderAuth trusts X-User-Id. Use this ONLY for development/testing.
func HeaderAuth(ensurer UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if fuid == "" {
			fuid = DevUserID
		}

		ensure(c, ensurer, users.UpsertUser{
			FirebaseUID: fuid,
			Email:       c.GetHeader("X-User-Email"),
			DisplayName: c.GetHeader("X-User-Name"),
			PhotoURL:    c.GetHeader("X-User-Photo"),
		})
	}
}

func ensure(c *gin.Context, ensurer UserEnsurer, u users.UpsertUser) {
	id, err := ensurer.EnsureUser(c.Request.Context(), u)
	if err != nil {
		logging.FromContext(c.Request.Context(), nil).Error("ensure user failed",
			zap.String("firebase_uid", u.FirebaseUID), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user failed"})
		return
	}

	c.Set(CtxFirebaseUID, u.FirebaseUID)
	c.Set(CtxUserDBID, id)
	if u.Email != "" {
		c.Set(CtxEmail, u.Email)
	}
	c.Next()
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
