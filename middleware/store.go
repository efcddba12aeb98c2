package middleware

import (
	"github.com/gin-gonic/gin"

	"studymate/store"
)

// StoreMiddleware injects the content store into the request context so
// handlers can fetch it with c.MustGet("store").
func StoreMiddleware(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("store", st)
		c.Next()
	}
}
