package punch

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the type of a worktime punch as the Kiho API spells it.
// A LOGIN punch opens a work session, a LOGOUT punch closes it.
type Kind string

const (
	Login  Kind = "LOGIN"
	Logout Kind = "LOGOUT"
)

// StampFormat is the timestamp layout used in all user-facing output.
const StampFormat = "02.01.2006 15:04:05"

// ParseFilter maps the CLI filter word (login, logout or all) to an optional Kind.
// "all" and "" mean no filter and return nil. Unknown words are rejected so a typo
// never silently turns into an unfiltered query.
func ParseFilter(word string) (*Kind, error) {
	switch strings.ToLower(word) {
	case "", "all":
		return nil, nil
	case "login":
		k := Login
		return &k, nil
	case "logout":
		k := Logout
		return &k, nil
	default:
		return nil, fmt.Errorf("unknown punch type %q (expected login, logout or all)", word)
	}
}

// Record is a single worktime punch line as returned by the Kiho API.
// Records are created by the API client when parsing a response and never mutated.
// An empty Description means the punch carried none (LOGOUT punches never do).
type Record struct {
	ID          int64
	Kind        Kind
	Timestamp   time.Time
	Description string
	CostCentre  string
}

// String renders a record the way the original tool prints single punch lines.
func (r Record) String() string {
	return fmt.Sprintf("%s %s '%s' (id: %d)", r.Timestamp.Format(StampFormat), r.Kind, r.Description, r.ID)
}
