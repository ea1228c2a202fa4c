// Package handler is the first layer after the router.
//
// It parses requests, validates input through the validation
// package and calls the service layer. It also serves the
// system endpoints: health and the browser form.
package handler
