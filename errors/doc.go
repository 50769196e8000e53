// Package errors provides the structured error type shared by funckit packages.
//
// Every failure surfaced by a pipeline pass or by configuration loading is an
// *AppError carrying a machine-readable code, a human-readable message and
// optional details. The caller's original error stays reachable through
// Unwrap, so errors.Is and errors.As keep working across the wrapper.
package errors
