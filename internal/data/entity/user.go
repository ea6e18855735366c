package entity

import "time"

type User struct {
	Base
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	IsActive     bool       `db:"is_active"`
	LastLogin    *time.Time `db:"last_login"`
}
