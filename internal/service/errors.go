package service

import "net/http"

// serviceError carries the HTTP status the error handler should answer with.
type serviceError struct {
	code int
	msg  string
}

func (e *serviceError) Error() string   { return e.msg }
func (e *serviceError) StatusCode() int { return e.code }

var (
	ErrWorkshopNotFound   = &serviceError{code: http.StatusNotFound, msg: "workshop not found"}
	ErrTemplateNotFound   = &serviceError{code: http.StatusNotFound, msg: "template not found"}
	ErrUserNotFound       = &serviceError{code: http.StatusNotFound, msg: "user not found"}
	ErrInvalidCredentials = &serviceError{code: http.StatusUnauthorized, msg: "invalid credentials"}
	ErrEmailTaken         = &serviceError{code: http.StatusConflict, msg: "email already registered"}
)

var ErrInvalidDocument = &serviceError{code: http.StatusBadRequest, msg: "invalid workshop document"}
