package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mclang/kiho-wt-puncher/internal/api"
	"github.com/mclang/kiho-wt-puncher/internal/punch"
)

// fakeAPI returns a canned record list and tracks whether the network layer
// was reached at all.
type fakeAPI struct {
	records    []punch.Record
	err        error
	fetchCalls int
	lastKind   *punch.Kind
}

func (f *fakeAPI) FetchLatest(count int, kind *punch.Kind) ([]punch.Record, error) {
	f.fetchCalls++
	f.lastKind = kind
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeAPI) SubmitPunch(kind punch.Kind, description string) (*punch.Record, error) {
	panic("history query must never submit punches")
}

// mixed builds an alternating LOGIN/LOGOUT history, newest first.
func mixed(n int) []punch.Record {
	records := make([]punch.Record, n)
	for i := range records {
		kind := punch.Login
		if i%2 == 1 {
			kind = punch.Logout
		}
		records[i] = punch.Record{
			ID:        int64(n - i),
			Kind:      kind,
			Timestamp: time.Now().Add(-time.Duration(i) * time.Hour),
		}
	}
	return records
}

func TestLatestRejectsZeroCountBeforeAnyNetworkCall(t *testing.T) {
	server := &fakeAPI{}
	_, err := NewService(server).Latest(0, "all")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.InvalidArgument, apiErr.Category)
	require.Zero(t, server.fetchCalls)
}

func TestLatestRejectsUnknownFilterWord(t *testing.T) {
	server := &fakeAPI{}
	_, err := NewService(server).Latest(5, "lunch")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.InvalidArgument, apiErr.Category)
	require.Zero(t, server.fetchCalls)
}

func TestLatestAllPassesNoKindFilter(t *testing.T) {
	server := &fakeAPI{records: mixed(4)}
	records, err := NewService(server).Latest(4, "all")
	require.NoError(t, err)
	require.Nil(t, server.lastKind)
	require.Len(t, records, 4)
}

func TestLatestLoginFiltersMixedRecordsPreservingOrder(t *testing.T) {
	// A server ignoring the type parameter and returning mixed kinds must
	// still result in LOGIN-only output, in the order the server chose.
	server := &fakeAPI{records: mixed(10)}
	records, err := NewService(server).Latest(10, "login")
	require.NoError(t, err)

	require.NotNil(t, server.lastKind)
	require.Equal(t, punch.Login, *server.lastKind)

	require.Len(t, records, 5)
	for i, rec := range records {
		require.Equal(t, punch.Login, rec.Kind)
		if i > 0 {
			require.Greater(t, records[i-1].ID, rec.ID, "server order must be preserved")
		}
	}
}

func TestLatestPropagatesAPIErrors(t *testing.T) {
	server := &fakeAPI{err: &api.Error{Category: api.Unavailable, Message: "timeout"}}
	_, err := NewService(server).Latest(3, "logout")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.Unavailable, apiErr.Category)
}
