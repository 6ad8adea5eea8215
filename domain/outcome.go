package domain

import "strings"

// Outcome is the structured result kind hidden inside the server's
// human-readable messages. The wall server signals state through message
// prefixes; callers branch on Outcome and keep the text purely for display.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeLoggedIn
	OutcomePosted
	OutcomeDeleted
	OutcomeUnfollowed
	OutcomeCommented
	OutcomeUnauthorized
)

var outcomePrefixes = []struct {
	prefix  string
	outcome Outcome
}{
	{"Logged in", OutcomeLoggedIn},
	{"Posted", OutcomePosted},
	{"Deleted", OutcomeDeleted},
	{"Unfollow", OutcomeUnfollowed},
	{"You ", OutcomeCommented},
	{"Unauthorized", OutcomeUnauthorized},
}

// ParseOutcome maps a server message to its result kind.
func ParseOutcome(message string) Outcome {
	for _, p := range outcomePrefixes {
		if strings.HasPrefix(message, p.prefix) {
			return p.outcome
		}
	}
	return OutcomeUnknown
}

func (o Outcome) String() string {
	switch o {
	case OutcomeLoggedIn:
		return "logged in"
	case OutcomePosted:
		return "posted"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeUnfollowed:
		return "unfollowed"
	case OutcomeCommented:
		return "commented"
	case OutcomeUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}
