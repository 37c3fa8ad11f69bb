package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mclang/kiho-wt-puncher/internal/config"
	"github.com/mclang/kiho-wt-puncher/internal/punch"
)

const testUserAgent = "Kiho Worktime Puncher test"

func testConfig(url string) *config.Config {
	return &config.Config{
		APIKey:            "secret-key",
		APIURL:            url,
		TimeoutSeconds:    1,
		DefaultCostCentre: 892621,
	}
}

func TestSubmitPunchSuccess(t *testing.T) {
	var gotAuth, gotContentType, gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"result":{"id":13586650,"type":"LOGIN","timestamp":"2023-08-24T08:02:12+03:00",
			"description":"Rusting it out","customerCostcentre":{"name":"Product development"}}}`)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), testUserAgent)
	rec, err := client.SubmitPunch(punch.Login, "Rusting it out")
	require.NoError(t, err)

	require.Equal(t, "secret-key", gotAuth)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, testUserAgent, gotUserAgent)

	require.Equal(t, int64(13586650), rec.ID)
	require.Equal(t, punch.Login, rec.Kind)
	require.Equal(t, "Rusting it out", rec.Description)
	require.Equal(t, "Product development", rec.CostCentre)
	require.Equal(t, 2023, rec.Timestamp.Year())
}

func TestSubmitPunchRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), testUserAgent)
	_, err := client.SubmitPunch(punch.Login, "whatever")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, Rejected, apiErr.Category)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestSubmitPunchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), testUserAgent)
	_, err := client.SubmitPunch(punch.Logout, "")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, Unavailable, apiErr.Category)
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestSubmitPunchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release // hold the response past the 1s client timeout
	}))
	defer srv.Close()
	defer close(release)

	client := New(testConfig(srv.URL), testUserAgent)
	_, err := client.SubmitPunch(punch.Login, "slow")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, Unavailable, apiErr.Category)
	require.Zero(t, apiErr.StatusCode)
}

func TestSubmitPunchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>definitely not JSON</html>")
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), testUserAgent)
	_, err := client.SubmitPunch(punch.Login, "whatever")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, Protocol, apiErr.Category)
}

func TestSubmitPunchOnlyLoginCarriesDescription(t *testing.T) {
	client := New(testConfig("http://unused"), testUserAgent)

	login, err := client.PunchBody(punch.Login, "fix bug")
	require.NoError(t, err)
	require.Contains(t, string(login), `"description": "fix bug"`)
	require.Contains(t, string(login), `"id": 892621`)

	logout, err := client.PunchBody(punch.Logout, "ignored")
	require.NoError(t, err)
	require.NotContains(t, string(logout), "description")
	require.NotContains(t, string(logout), "customerCostcentre")
}

func TestFetchLatestQueryContract(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Empty(t, r.Header.Get("Content-Type"))
		gotQuery = map[string]string{
			"orderBy":  r.URL.Query().Get("orderBy"),
			"pageSize": r.URL.Query().Get("pageSize"),
			"type":     r.URL.Query().Get("type"),
		}
		fmt.Fprint(w, `{"result":[
			{"id":2,"type":"LOGIN","timestamp":"2024-09-04T15:39:37+03:00","description":"later"},
			{"id":1,"type":"LOGIN","timestamp":"2024-09-04T08:00:00+03:00","description":"earlier"}]}`)
	}))
	defer srv.Close()

	kind := punch.Login
	client := New(testConfig(srv.URL), testUserAgent)
	records, err := client.FetchLatest(10, &kind)
	require.NoError(t, err)

	require.Equal(t, "timestamp DESC", gotQuery["orderBy"])
	require.Equal(t, "10", gotQuery["pageSize"])
	require.Equal(t, "LOGIN", gotQuery["type"])

	// Server ordering (newest first) must be preserved as-is.
	require.Len(t, records, 2)
	require.Equal(t, int64(2), records[0].ID)
	require.Equal(t, int64(1), records[1].ID)
}

func TestFetchLatestRejectsZeroCountLocally(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), testUserAgent)
	_, err := client.FetchLatest(0, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, InvalidArgument, apiErr.Category)
	require.Zero(t, requests, "no network call may happen for a useless request")
}

func TestFetchLatestBadTimestampIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":[{"id":1,"type":"LOGIN","timestamp":"24.08.2023 08:02"}]}`)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), testUserAgent)
	_, err := client.FetchLatest(1, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, Protocol, apiErr.Category)
}

func TestRecordTimestampKeepsServerOffset(t *testing.T) {
	line := punchLine{ID: 7, Type: "LOGOUT", Timestamp: "2023-08-24T09:44:40+03:00"}
	rec, err := line.toRecord()
	require.NoError(t, err)

	want := time.Date(2023, time.August, 24, 9, 44, 40, 0, time.FixedZone("", 3*60*60))
	require.True(t, rec.Timestamp.Equal(want))
}
