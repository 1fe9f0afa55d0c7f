package jwt

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or missing token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
