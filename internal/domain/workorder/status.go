package workorder

import "fmt"

// ===============================
// Work Order Status
// ===============================

type Status string

const (
	StatusNew              Status = "new"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusReadyToStart     Status = "ready_to_start"
	StatusInProgress       Status = "in_progress"
	StatusDone             Status = "done"
	StatusClosed           Status = "closed"
)

// AllStatuses in lifecycle order. Lowercase is the only serialization;
// no other casing ever touches the database.
var AllStatuses = []Status{
	StatusNew,
	StatusAwaitingApproval,
	StatusReadyToStart,
	StatusInProgress,
	StatusDone,
	StatusClosed,
}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusAwaitingApproval, StatusReadyToStart,
		StatusInProgress, StatusDone, StatusClosed:
		return true
	}
	return false
}

// TransitionError reports a guard failure, naming both the status the
// transition requires and the status the work order is actually in.
type TransitionError struct {
	Action   string
	Required Status
	Actual   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf(
		"cannot %s work order: requires status %q, current status is %q",
		e.Action, e.Required, e.Actual,
	)
}

// ===============================
// Transition guards
// ===============================

func CanRequestApproval(current Status) error {
	if current != StatusNew {
		return &TransitionError{Action: "request approval for", Required: StatusNew, Actual: current}
	}
	return nil
}

func CanStart(current Status) error {
	if current != StatusReadyToStart {
		return &TransitionError{Action: "start", Required: StatusReadyToStart, Actual: current}
	}
	return nil
}

func CanFinish(current Status) error {
	if current != StatusInProgress {
		return &TransitionError{Action: "finish", Required: StatusInProgress, Actual: current}
	}
	return nil
}

func CanClose(current Status) error {
	if current != StatusDone {
		return &TransitionError{Action: "close", Required: StatusDone, Actual: current}
	}
	return nil
}

func InitialStatus() Status {
	return StatusNew
}
