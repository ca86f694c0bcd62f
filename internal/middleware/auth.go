package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/session"
)

// ErrorResponse is the JSON error body of the panel API
type ErrorResponse struct {
	Error string `json:"error"`
}

// RequireSession rejects JSON API calls without a live session. A token
// whose exp claim already passed is rejected without asking the backend.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		store := session.FromContext(c)
		if !store.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Sessão não encontrada"})
			return
		}
		if store.Expired() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Sessão expirada"})
			return
		}
		c.Next()
	}
}
