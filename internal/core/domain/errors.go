package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrShopNotOwned       = errors.New("shop does not belong to user")
	ErrTokenRevoked       = errors.New("token revoked")
)
