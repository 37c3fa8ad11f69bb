package history

import (
	"github.com/mclang/kiho-wt-puncher/internal/api"
	"github.com/mclang/kiho-wt-puncher/internal/punch"
)

// Service answers "get latest N <login|logout|all>" requests.
// It owns input validation and the filter-word mapping; the actual fetch is
// delegated to the API client.
type Service struct {
	api punch.API
}

// NewService wires the query service to the API client.
func NewService(a punch.API) *Service {
	return &Service{api: a}
}

// Latest returns the newest count punch records matching the filter word
// (login, logout or all), in the order the server returned them.
//
// Validation happens before any network call: a non-positive count or an
// unknown filter word fails immediately with an InvalidArgument error.
// The requested kind is also enforced locally on the returned records —
// the server is trusted for ordering but not for filtering.
func (s *Service) Latest(count int, filter string) ([]punch.Record, error) {
	if count <= 0 {
		return nil, &api.Error{
			Category: api.InvalidArgument,
			Message:  "punch count must be a positive number",
		}
	}
	kind, err := punch.ParseFilter(filter)
	if err != nil {
		return nil, &api.Error{Category: api.InvalidArgument, Message: err.Error()}
	}

	records, err := s.api.FetchLatest(count, kind)
	if err != nil {
		return nil, err
	}
	if kind == nil {
		return records, nil
	}

	filtered := records[:0]
	for _, rec := range records {
		if rec.Kind == *kind {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}
