package model

import (
	"strings"
	"time"
)

// Role identifies what a marketplace participant is allowed to do.
type Role string

const (
	RoleShipper Role = "shipper"
	RoleCarrier Role = "carrier"
	RoleAdmin   Role = "admin"
)

// ParseRole normalizes a role name. Only shipper, carrier and admin are recognized.
func ParseRole(raw string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleShipper, RoleCarrier, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// User represents a registered marketplace participant.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
