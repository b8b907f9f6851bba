package request

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	PlayerName string `json:"playername" validate:"required"`
	UserName   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	UserName string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
