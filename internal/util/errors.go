package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrModuleNotFound       = errors.New("module not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrContentNotFound      = errors.New("content not found")
	ErrLeadNotFound         = errors.New("lead not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrImportSessionExpired = errors.New("import session not found or expired")
	ErrInvalidVideoExt      = errors.New("unsupported video file extension")
)
