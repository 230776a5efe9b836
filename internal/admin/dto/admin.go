package dto

import "time"

type BlockRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

type PremiumRequest struct {
	Premium *bool      `json:"premium" binding:"required"`
	Expiry  *time.Time `json:"expiry"`
}

type RoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student admin"`
}
