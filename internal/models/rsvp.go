package models

type ConfirmRequest struct {
	Code string `json:"code"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
