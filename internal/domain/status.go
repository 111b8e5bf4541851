package domain

// Application status constants
const (
	StatusApplied   = "applied"
	StatusReviewed  = "reviewed"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
)

// statusOrder positions the linearly ordered pipeline statuses.
// Terminal statuses (rejected, withdrawn) are deliberately absent.
var statusOrder = map[string]int{
	StatusApplied:   0,
	StatusReviewed:  1,
	StatusInterview: 2,
	StatusOffer:     3,
}

var validStatuses = map[string]bool{
	StatusApplied:   true,
	StatusReviewed:  true,
	StatusInterview: true,
	StatusOffer:     true,
	StatusRejected:  true,
	StatusWithdrawn: true,
}

// IsValidStatus reports whether s is one of the six defined statuses.
func IsValidStatus(s string) bool {
	return validStatuses[s]
}

// IsTerminalStatus reports whether s admits no further progression.
// Offer is terminal for automation purposes: the pipeline ends there.
func IsTerminalStatus(s string) bool {
	return s == StatusOffer || s == StatusRejected || s == StatusWithdrawn
}

// NextStatus returns the single next step along
// applied → reviewed → interview → offer. The second return is false
// when s has no next step (offer or a terminal status).
func NextStatus(s string) (string, bool) {
	pos, ok := statusOrder[s]
	if !ok || pos >= statusOrder[StatusOffer] {
		return "", false
	}
	for name, p := range statusOrder {
		if p == pos+1 {
			return name, true
		}
	}
	return "", false
}

// CanTransition decides whether a manual move from -> to is legal.
// Rejected and withdrawn accept no further transitions and are reachable
// from any other state in both modes. In lax mode any other valid status
// is accepted as-is (admin override); strict mode additionally requires
// single-step adjacency along the pipeline.
func CanTransition(from, to string, strict bool) bool {
	if !IsValidStatus(from) || !IsValidStatus(to) || from == to {
		return false
	}
	if from == StatusRejected || from == StatusWithdrawn {
		return false
	}
	if to == StatusRejected || to == StatusWithdrawn {
		return true
	}
	if !strict {
		return true
	}
	next, ok := NextStatus(from)
	return ok && to == next
}
