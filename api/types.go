package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler    userHandler
	projectHandler projectHandler
	commentHandler commentHandler
	uploadHandler  uploadHandler
}

// MessageResponse is the body of mutations that return no resource
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Message string `json:"message" example:"internal server error"`
	Field   string `json:"field,omitempty" example:"title"`
}
