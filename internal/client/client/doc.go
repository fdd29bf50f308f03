// Package client contains the client side of gophauth.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Signup, Login and ListUsers.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, keeps the session token returned by Login, injects it as
//     "authorization: Bearer <token>" via an interceptor, and maps gRPC status
//     codes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrForbidden, ErrRejected.
// The server's message, when it has one, is kept in the error text.
package client
