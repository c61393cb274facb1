package models

// User is an API account. Panel credentials live in config, not here.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
