package models

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Fullname     string `json:"fullname"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar,omitempty"`
	Role         string `json:"role"` // User | Admin
	PasswordHash string `json:"-"`    // don't expose hash
}
