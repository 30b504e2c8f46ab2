package middleware

// identity.go holds the context keys JWTAuth fills and the accessors
// handlers and other middleware use to read them back.

import "github.com/labstack/echo/v4"

const (
	ctxMemberID   = "member_id"
	ctxMemberName = "member_name"
	ctxRole       = "role"
	ctxRequestID  = "request_id"
)

// MemberID returns the authenticated member id.  ok is false on routes
// that are not behind JWTAuth.
func MemberID(c echo.Context) (int64, bool) {
	id, ok := c.Get(ctxMemberID).(int64)
	return id, ok && id > 0
}

// MemberName returns the authenticated member's display name.
func MemberName(c echo.Context) string {
	s, _ := c.Get(ctxMemberName).(string)
	return s
}

// Role returns the authenticated member's role, or "" for anonymous requests.
func Role(c echo.Context) string {
	s, _ := c.Get(ctxRole).(string)
	return s
}

// RequestID returns the id assigned by AssignRequestID, or "".
func RequestID(c echo.Context) string {
	s, _ := c.Get(ctxRequestID).(string)
	return s
}
