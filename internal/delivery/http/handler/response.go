package handler

import "github.com/gin-gonic/gin"

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// currentUserID pulls the authenticated user id set by the auth
// middleware. The second return is false when the route is reached
// without authentication, which should never happen on protected
// groups.
func currentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := v.(int64)
	return userID, ok
}
