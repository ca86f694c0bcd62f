package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated", incoming: ""},
		{name: "propagated", incoming: "caller-id-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromGin, fromCtx string

			router := gin.New()
			router.Use(RequestID())
			router.GET("/", func(c *gin.Context) {
				fromGin = c.GetString(RequestIDKey)
				fromCtx = utils.RequestIDFromContext(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(utils.RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.NotEmpty(t, fromGin)
			assert.Equal(t, fromGin, fromCtx)
			assert.Equal(t, fromGin, rec.Header().Get(utils.RequestIDHeader))
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, fromGin)
			} else {
				assert.True(t, utils.IsUUID(fromGin))
			}
		})
	}
}

func TestRequestTiming_SetsStartTime(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var startTime time.Time
	router := gin.New()
	router.Use(RequestTiming(), RequestLogger(), RequestTracker())
	router.GET("/test", func(c *gin.Context) {
		v, ok := c.Get(startTimeKey)
		require.True(t, ok)
		startTime = v.(time.Time)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, startTime.IsZero())
}

func TestRequestTiming_UnmatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestTiming(), RequestLogger())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouteLabel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var label string
	router := gin.New()
	router.GET("/dashboard/produtores/:id", func(c *gin.Context) {
		label = routeLabel(c)
	})
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/dashboard/produtores/42", nil))

	assert.Equal(t, "/dashboard/produtores/:id", label)
}
