package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/observability"
	"go.uber.org/zap"
)

const errorPage = `<!doctype html><html lang="pt-BR"><head><meta charset="utf-8"><title>Erro</title></head>` +
	`<body><h1>Algo deu errado</h1><p>Tente novamente em instantes.</p><a href="/dashboard">Voltar ao painel</a></body></html>`

// Recovery turns a panic into a 500 response. The panic is logged and,
// when Sentry is initialised, reported with the request attached.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			hub := sentry.CurrentHub().Clone()
			hub.Scope().SetRequest(c.Request)
			hub.Scope().SetTag("request_id", c.GetString(RequestIDKey))
			hub.RecoverWithContext(c.Request.Context(), recovered)
			hub.Flush(2 * time.Second)

			observability.Logger().Error("panic recovered",
				zap.String("panic", fmt.Sprint(recovered)),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.ByteString("stack", debug.Stack()),
			)

			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Erro interno do servidor"})
				return
			}
			c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(errorPage))
			c.Abort()
		}()
		c.Next()
	}
}
