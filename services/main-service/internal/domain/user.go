package domain

import (
	"strings"
)

type User struct {
	ID    int64
	Name  string
	Email string

	// Rating is the net-approval percentage over the user's published, liked
	// events. Written only by the rating engine, never by clients.
	Rating float64
}

func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || len(name) > 250 {
		return nil, ErrValidation("name is required and must be <= 250 chars")
	}
	if email == "" || len(email) > 254 || !strings.Contains(email, "@") {
		return nil, ErrValidation("a valid email is required")
	}
	return &User{Name: name, Email: email}, nil
}
