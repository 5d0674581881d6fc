// Package cli implements the catsocial command-line client.
//
// Every subcommand is a single gRPC call. The session token obtained by
// register or login is kept in a file (see TokenStore) and sent with every
// later call. Passwords are read without echo and only their SHA-256 digest
// leaves the machine.
package cli
