package db

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrUserNotFound is returned when a username lookup matches nothing
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when creating a user with an existing username
var ErrUsernameTaken = errors.New("username already exists")

// VerifyPassword checks if the provided password matches the user's hashed password
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
