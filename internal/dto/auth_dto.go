package dto

type LoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Plan  string `json:"plan,omitempty"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
