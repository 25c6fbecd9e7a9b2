package domain

import "errors"

// Domain errors, shared by every layer of the application.

// Vehicle errors
var (
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrInvalidPlate       = errors.New("invalid license plate")
	ErrInvalidVehicleData = errors.New("invalid vehicle data")
)

// Supply selection errors
var (
	ErrInvalidSelection = errors.New("invalid supply selection")
)

// Wizard errors
var (
	ErrStageValidation  = errors.New("stage validation failed")
	ErrNoForwardStage   = errors.New("already at the last stage")
	ErrNoBackwardStage  = errors.New("already at the first stage")
	ErrSubmitNotAllowed = errors.New("submit is only allowed from the confirm stage")
	ErrSessionNotFound  = errors.New("wizard session not found")
)

// Record errors
var (
	ErrServiceNotFound = errors.New("service not found")
)

// General errors
var (
	ErrInternal = errors.New("internal server error")
	ErrNotFound = errors.New("not found")
)
