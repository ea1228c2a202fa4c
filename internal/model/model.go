// Package model holds the AccessRequest entity shared by the relay and the
// intake form, together with the application catalogue and the rules both
// sides validate against.
package model
