// Package errs defines the error types the relay returns to clients.
//
// Every failure that reaches the HTTP boundary is turned into an HTTPError,
// whose JSON shape is the one the intake form understands:
//
//	{ "error": "Campos obrigatórios faltando.", "code": "BAD_REQUEST" }
//
// Downstream detail never goes into an HTTPError; it is logged instead.
package errs
