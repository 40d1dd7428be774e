package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error taxonomy. Validation errors never reach the store; not-found covers
// both missing rows and rows owned by someone else; store errors carry the
// driver message verbatim and are never retried.

type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

type StoreError struct{ Err error }

func (e *StoreError) Error() string { return e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }
func notFoundErr(msg string) error   { return &NotFoundError{Msg: msg} }
func storeErr(err error) error       { return &StoreError{Err: err} }

// respondError maps a taxonomy error onto the HTTP boundary using the
// original API's envelope.
func respondError(c *gin.Context, err error) {
	var ve *ValidationError
	var nf *NotFoundError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.As(err, &nf):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
