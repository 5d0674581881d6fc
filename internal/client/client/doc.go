// Package client is the Go client of the catsocial gRPC API.
//
// GRPCClient manages the connection, attaches the session token to every
// call through an interceptor and maps gRPC status codes to the sentinel
// errors of this package, which callers match with errors.Is.
package client
