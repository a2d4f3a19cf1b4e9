package model

import (
	"time"
)

type User struct {
	ID             string    `db:"user_id"`
	Username       *string   `db:"username"`
	Email          *string   `db:"email"`
	PasswordHash   *string   `db:"user_pw"` // Nulled when the account is soft deleted
	Nickname       *string   `db:"user_nickname"`
	School         *string   `db:"school"`
	Major          *string   `db:"major"`
	ProfilePicture *string   `db:"profile_picture"`
	Role           *string   `db:"role"`
	CreatedAt      time.Time `db:"created_at"`
	IsDeleted      bool      `db:"is_deleted"`
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
