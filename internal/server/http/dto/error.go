package dto

// ErrorResponse is the body of every failed request that carries one.
type ErrorResponse struct {
	Error string `json:"error"`
}
