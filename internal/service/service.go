// Package service contains the business logic.
//
// It sits between the handler layer and the outbound webhook.
// It receives validated data from the handler, forwards it and
// reports the outcome back without exposing downstream detail.
package service
