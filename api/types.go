package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler    authHandler
	blogHandler    blogHandler
	commentHandler commentHandler
	userHandler    userHandler
	adminHandler   adminHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"not found"`
	Error   string `json:"error,omitempty" example:"Additional error details"`
	Field   string `json:"field,omitempty" example:"username"`
}
