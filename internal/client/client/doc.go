// Package client is the typed gateway to the SAM terminal backend.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic contracts: Client for player operations and
//     AdminClient for administration.
//  2. HTTPClient, the JSON-over-HTTP implementation. It is stateless: the
//     bearer token is an argument of every call.
//  3. NormalizeURL, which resolves backend-relative asset paths
//     ("/uploads/x.png") against the configured base. Every URL that
//     reaches a caller has been through it.
//  4. Mapping from wire DTOs to the models package, including the
//     synthetic current Location built from the flat status fields.
//
// # Error Handling
//
// Every failed operation returns *OpError. Its message is specific to the
// operation and errors.Is matches the operation kind (ErrLoginFailed,
// ErrMapFailed, ...). In addition:
//
//   - errors.Is(err, ErrUnavailable) when no response arrived,
//   - errors.Is(err, ErrUnauthorized) on 401 and 403,
//   - ResendNotReady(err) on a verification-code send refused by the
//     resend interval, with the time another send is allowed.
//
// Nothing is retried or cached here.
package client
