package transaction

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
)

// IsTerminal reports whether no further transition may leave this status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// CanTransitionTo encodes the confirmation state machine: the only legal
// transitions are PENDING to one of the terminal statuses. Once terminal, a
// status never changes; in particular a PAID transaction is never reverted by
// a late cancellation event.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusPending {
		return false
	}
	return next.IsTerminal()
}
