package jwttoken

import (
	authmw "licensing/pkg/platform/middleware/auth"
)

// JWTServiceAdapter exposes JWTService through the middleware's validator
// interface so the middleware package does not import the token package.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{
		UserID: userID,
		Role:   claims.Role,
		JTI:    claims.ID,
	}, nil
}
