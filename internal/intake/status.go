package intake

// Status is the submission state of a Form.
//
// It is a closed set: Idle, Submitting, Succeeded and Failed are the only
// implementations, and only this package can create new ones.
type Status interface {
	isStatus()
}

// Idle means nothing has been submitted yet.
type Idle struct{}

// Submitting means a request is in flight; further submits are rejected.
type Submitting struct{}

// Succeeded means the relay accepted the last request.
type Succeeded struct {
	Message string
}

// FailureKind tells connectivity problems apart from relay-reported errors.
type FailureKind int

const (
	// FailureConnection means no response was received from the relay.
	FailureConnection FailureKind = iota + 1

	// FailureServer means the relay answered with a non-2xx status.
	FailureServer
)

func (k FailureKind) String() string {
	switch k {
	case FailureConnection:
		return "connection"
	case FailureServer:
		return "server"
	default:
		return "unknown"
	}
}

// Failed means the last request did not go through.
type Failed struct {
	Kind    FailureKind
	Message string
}

func (Idle) isStatus()       {}
func (Submitting) isStatus() {}
func (Succeeded) isStatus()  {}
func (Failed) isStatus()     {}

// IsResolved reports whether s is a final outcome of a submission.
func IsResolved(s Status) bool {
	switch s.(type) {
	case Succeeded, Failed:
		return true
	default:
		return false
	}
}
