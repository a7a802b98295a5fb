package auth

import "github.com/golang-jwt/jwt/v5"

// StaffClaims is the typed JWT issued to back-office staff.
type StaffClaims struct {
	StaffID uint   `json:"staff_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}
