package service

import "errors"

// Sentinel errors for the contact pipeline. Every one of them ends the
// request; none is retried.
var (
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrConfiguration    = errors.New("recipient email not configured")
	ErrMissingFields    = errors.New("missing required field")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrDispatch         = errors.New("mail dispatch failed")
)
