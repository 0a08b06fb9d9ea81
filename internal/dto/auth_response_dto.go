package dto

// LoginResponse carries the bearer token issued on successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
