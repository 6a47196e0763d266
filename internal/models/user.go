package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPERADMIN"
	RoleNormal     = "NORMAL"
)

// User is a back-office account. Only bcrypt hashes are persisted.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSuperAdmin, RoleNormal:
		return true
	}
	return false
}
