package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
)

const (
	ContextOperatorID = "operatorID"
	ContextRequestID  = "requestID"
)

// AuthMiddleware admits operator tokens whose subject is a chat id listed in
// ADMIN_IDS. The operator id is also put on the request context for audit.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		operatorID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		if !cfg.IsAdmin(operatorID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not_an_operator"})
			return
		}

		c.Set(ContextOperatorID, operatorID)
		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), operatorID))

		c.Next()
	}
}

// OperatorToken signs the token AuthMiddleware accepts.
func OperatorToken(cfg *config.Config, operatorID int64) (string, error) {
	now := jwt.NewNumericDate(timeNow())
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(operatorID, 10),
		IssuedAt:  now,
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
