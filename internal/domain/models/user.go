// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account allowed to sign in to the admin area.
type User struct {
	ID           primitive.ObjectID `bson:"_id"`
	FullName     string             `bson:"full_name"`
	LoginID      string             `bson:"login_id"`
	LoginIDCI    string             `bson:"login_id_ci"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Status       string             `bson:"status"`
	LastLoginAt  *time.Time         `bson:"last_login_at,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// Roles and statuses.
const (
	RoleAdmin      = "admin"
	StatusActive   = "active"
	StatusDisabled = "disabled"
)
