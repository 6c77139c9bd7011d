package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// operatorIDKey is the key used to store the acting operator's ID in the
// request context.
const operatorIDKey = contextKey("operatorID")

// operatorHeader is the header thin clients use to identify the counter
// operator performing the request. This is an audit identifier, not an
// authentication mechanism.
const operatorHeader = "X-Operator-ID"

// defaultOperatorID is recorded when no operator header is present.
const defaultOperatorID = "system"

// OperatorMiddleware stores the operator identifier from the request header
// into the request context for audit fields.
func OperatorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		operatorID := c.GetHeader(operatorHeader)
		if operatorID == "" {
			operatorID = defaultOperatorID
		}
		ctx := context.WithValue(c.Request.Context(), operatorIDKey, operatorID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetOperatorIDFromContext retrieves the operator ID from the request context.
func GetOperatorIDFromContext(c *gin.Context) string {
	operatorID, ok := c.Request.Context().Value(operatorIDKey).(string)
	if !ok || operatorID == "" {
		return defaultOperatorID
	}
	return operatorID
}
