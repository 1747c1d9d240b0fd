package domain

import "time"

// User описывает зарегистрированного покупателя
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func NewUser(name, email, passwordHash string) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
}
