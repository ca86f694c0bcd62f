package session

import (
	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
)

const (
	storeKey   = "session.store"
	browserKey = "session.browser_id"
)

// SessionContext rehydrates the session once per request and makes sure
// the browser carries an id for its UI state
func SessionContext(cookies Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(storeKey, Rehydrate(c.Request))

		id := BrowserID(c.Request)
		if !utils.IsUUID(id) {
			id = utils.GenerateUUID()
			cookies.SetBrowserID(c.Writer, id)
		}
		c.Set(browserKey, id)

		c.Next()
	}
}

// FromContext returns the request's session store. Outside SessionContext
// it returns an empty store.
func FromContext(c *gin.Context) *Store {
	if v, ok := c.Get(storeKey); ok {
		if store, ok := v.(*Store); ok {
			return store
		}
	}
	store := NewStore()
	c.Set(storeKey, store)
	return store
}

// BrowserIDFromContext returns the browser id assigned by SessionContext
func BrowserIDFromContext(c *gin.Context) string {
	return c.GetString(browserKey)
}
