// Package middleware holds the Echo middleware stack shared by every route:
// request identification, structured request logging, panic recovery, and
// per-client rate limiting.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader is the header carrying the request correlation id.
const RequestIDHeader = "X-Request-ID"

// contextKeyRequestID is the echo context key middleware and handlers read.
const contextKeyRequestID = "request_id"

// RequestID assigns every request a correlation id. An inbound X-Request-ID
// is preserved so upstream proxies can trace calls end to end; otherwise a
// fresh UUID is generated. The id is stored on the context and echoed back
// in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.New().String()
			}
			c.Set(contextKeyRequestID, rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}
