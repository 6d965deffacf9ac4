package users

import "time"

// Account statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Statuses is the closed set of account statuses.
var Statuses = []string{StatusActive, StatusInactive}

// User is an application account. The password hash never leaves the API.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"fullName"`
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin"`
}
