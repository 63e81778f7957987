// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is a registered account. Passwords are stored only as Argon2id
// hashes.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"-"`
	Email        string       `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	Name         string       `gorm:"column:name;type:text" json:"name"`
	PasswordHash string       `gorm:"column:password_hash;type:text;not null" json:"-"`
	CreatedAt    time.Time    `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;not null" json:"-"`
}

func (User) TableName() string { return "users" }

// Session is a persisted login. Only the SHA-256 hash of the opaque token
// is stored; the raw token exists solely in the login response.
type Session struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"-"`
	UserID     snowflake.ID `gorm:"column:user_id;not null;index" json:"-"`
	TokenHash  string       `gorm:"column:token_hash;type:text;not null;uniqueIndex" json:"-"`
	ExpiresAt  time.Time    `gorm:"column:expires_at;not null;index" json:"expires_at"`
	RevokedAt  *time.Time   `gorm:"column:revoked_at" json:"-"`
	CreatedAt  time.Time    `gorm:"column:created_at;not null" json:"-"`
	LastSeenAt time.Time    `gorm:"column:last_seen_at;not null" json:"-"`
}

func (Session) TableName() string { return "sessions" }
