package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed caller-supplied request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDomainParse indicates an external response is missing a field
	// the mapping logic cannot proceed without.
	ErrDomainParse = errors.New("domain parse error")

	// ErrInvalidResponse indicates the search engine omitted mandatory
	// pagination metadata. It is a specialisation of ErrDomainParse.
	ErrInvalidResponse = fmt.Errorf("invalid response: %w", ErrDomainParse)

	// ErrConflict is reserved for upsert races reported by the engine.
	ErrConflict = errors.New("conflict")

	// Collaborator Errors.

	// ErrBadGateway indicates an external collaborator kept failing
	// after the retry budget was exhausted.
	ErrBadGateway = errors.New("bad gateway")

	// ErrServiceUnavailable indicates an external collaborator is down
	// or reports itself unhealthy.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrRateLimited indicates the provider rejected a request for quota reasons.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthRequired indicates the provider needs credentials but none are configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrIngestInProgress indicates an ingestion run is already active for a channel.
	ErrIngestInProgress = errors.New("ingest in progress")
)

// ErrorClass groups errors by who is at fault, for the outer API layers.
type ErrorClass int

const (
	// ClassInternal is an unexpected failure inside this process.
	ClassInternal ErrorClass = iota
	// ClassClient is a caller mistake (bad input, unknown id).
	ClassClient
	// ClassGateway is a failure of an external collaborator.
	ClassGateway
)

// String returns the class name.
func (c ErrorClass) String() string {
	switch c {
	case ClassClient:
		return "client"
	case ClassGateway:
		return "gateway"
	default:
		return "internal"
	}
}

// Classify maps an error onto the client / gateway / internal taxonomy.
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ClassInternal
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict):
		return ClassClient
	case errors.Is(err, ErrBadGateway), errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, ErrDomainParse), errors.Is(err, ErrRateLimited):
		return ClassGateway
	default:
		return ClassInternal
	}
}

// Retryable reports whether a provider call that failed with err may be
// attempted again. Caller mistakes and malformed payloads never heal on retry.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrInvalidInput) &&
		!errors.Is(err, ErrNotFound) &&
		!errors.Is(err, ErrDomainParse) &&
		!errors.Is(err, ErrAuthRequired)
}
