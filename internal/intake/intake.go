// Package intake is the client side of the access-request flow.
//
// A Form collects the AccessRequest fields, validates them with the same
// rules the browser form uses, and submits a valid request exactly once
// through a Submitter (normally a RelayClient pointed at the relay).
//
// Form state is three things kept side by side: field values, one error
// message per failing field, and a Status that is Idle, Submitting, or a
// resolved Succeeded/Failed.
package intake
