package services

import "errors"

// ErrCredentialsRejected marks a provider failure caused by an invalid API key.
var ErrCredentialsRejected = errors.New("provider rejected credentials")

// ConfigurationError means the service cannot run as configured
// (missing API key, unknown provider).
type ConfigurationError struct{ Message string }

func (e *ConfigurationError) Error() string { return e.Message }

// AuthenticationError means the provider rejected the configured credential.
// It is a backend configuration problem, not a user input problem.
type AuthenticationError struct {
	Message string
	Cause   error
}

func (e *AuthenticationError) Error() string { return e.Message }

func (e *AuthenticationError) Unwrap() error { return e.Cause }

// ProviderError is any other upstream failure. Message is safe to show to
// clients; Cause is for logs only.
type ProviderError struct {
	Message string
	Cause   error
}

func (e *ProviderError) Error() string { return e.Message }

func (e *ProviderError) Unwrap() error { return e.Cause }
