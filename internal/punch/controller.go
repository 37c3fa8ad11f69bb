package punch

import (
	"errors"
	"fmt"

	"github.com/mclang/kiho-wt-puncher/internal/logger"
)

// Sequence-invariant violations detected by the pre-check. These are user
// errors (nothing was written) and are reported directly, never retried.
var (
	// ErrAlreadyStarted means the latest punch on the server is a LOGIN,
	// so starting again would create two consecutive LOGIN punches.
	ErrAlreadyStarted = errors.New("worktime already started (latest punch is LOGIN)")
	// ErrNotStarted means the latest punch on the server is a LOGOUT, or no
	// punch exists at all, so there is no open session to stop.
	ErrNotStarted = errors.New("worktime not started (no open LOGIN punch)")
)

// API is the slice of the API client the controller needs. Declared here so
// the state machine can be exercised against a fake in tests.
type API interface {
	SubmitPunch(kind Kind, description string) (*Record, error)
	FetchLatest(count int, kind *Kind) ([]Record, error)
}

// Controller enforces punch-sequence correctness for start/stop requests.
//
// The CLI is stateless across invocations, so the controller holds no session
// cache: before every write it fetches the single latest punch from the server
// and derives the open/closed state from its kind. One extra round trip per
// punch guarantees the client never issues a sequence-violating write.
type Controller struct {
	api API
}

// NewController wires the controller to the API client it mediates.
func NewController(api API) *Controller {
	return &Controller{api: api}
}

// Start opens a work session by submitting a LOGIN punch with the given
// description. Fails with ErrAlreadyStarted, without touching the write
// endpoint, if the latest punch on the server is already a LOGIN.
func (c *Controller) Start(description string) (*Record, error) {
	last, err := c.latest()
	if err != nil {
		return nil, fmt.Errorf("pre-check: %w", err)
	}
	if last != nil && last.Kind == Login {
		logger.Debug("[DEBUG] Refusing LOGIN: latest punch is %s\n", last)
		return nil, ErrAlreadyStarted
	}

	rec, err := c.api.SubmitPunch(Login, description)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	return rec, nil
}

// Stop closes the open work session by submitting a LOGOUT punch.
// Fails with ErrNotStarted, without touching the write endpoint, if no punch
// exists yet or the latest punch is already a LOGOUT.
func (c *Controller) Stop() (*Record, error) {
	last, err := c.latest()
	if err != nil {
		return nil, fmt.Errorf("pre-check: %w", err)
	}
	if last == nil || last.Kind != Login {
		if last != nil {
			logger.Debug("[DEBUG] Refusing LOGOUT: latest punch is %s\n", last)
		}
		return nil, ErrNotStarted
	}

	rec, err := c.api.SubmitPunch(Logout, "")
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	return rec, nil
}

// latest fetches the single most recent punch, or nil when none exists.
func (c *Controller) latest() (*Record, error) {
	records, err := c.api.FetchLatest(1, nil)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}
