package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipart boundaries, form fields and the JSON envelope around a payload
const bodyOverhead = 1 << 20

// BodyLimit caps request bodies so that a media payload of maxMedia bytes
// still fits once base64 encoded.
func BodyLimit(maxMedia int64) gin.HandlerFunc {
	limit := BodyLimitFor(maxMedia)
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// BodyLimitFor returns the body cap used for a media limit.
func BodyLimitFor(maxMedia int64) int64 {
	return (maxMedia+2)/3*4 + bodyOverhead
}
