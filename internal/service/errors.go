package service

import "errors"

var (
	ErrForbidden        = errors.New("not allowed for this account")
	ErrStudentNotFound  = errors.New("student not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrReportsDisabled  = errors.New("report storage is not configured")
)
