// Package cli provides the interactive gophauth command-line client.
//
// It wires configuration, the gRPC API client and a small REPL:
//
//   - signup  create an account
//   - login   authenticate; the session token is kept in memory
//   - users   list registered emails (requires login)
//   - help / exit
//
// Passwords are read from the terminal without echo. The REPL is started via
// App.Run(ctx), which blocks until the user exits or stdin closes.
package cli
