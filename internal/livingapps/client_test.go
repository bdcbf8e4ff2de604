package livingapps

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk-api/pkg/config"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

type recordedCall struct {
	appID string
	op    string
}

type fakeObserver struct {
	calls []recordedCall
}

func (f *fakeObserver) ObserveRecordCall(appID, op string, _ time.Duration) {
	f.calls = append(f.calls, recordedCall{appID: appID, op: op})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *fakeObserver, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	observer := &fakeObserver{}
	client := NewClient(config.LivingAppsConfig{
		BaseURL: server.URL,
		Token:   "secret-token",
		Timeout: 5 * time.Second,
	}, nil, observer)
	return client, observer, server
}

func TestClientListRecords(t *testing.T) {
	client, observer, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/app-1/records", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"record_id":"rec-1","createdat":"2026-01-01T10:00:00Z","updatedat":null,"fields":{"name":"Alice"}},
			{"record_id":"rec-2","createdat":"2026-01-02T10:00:00Z","updatedat":"2026-01-03T10:00:00Z","fields":{"name":"Bob"}}
		]`))
	})

	records, err := client.ListRecords(context.Background(), "app-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec-1", records[0].RecordID)
	assert.Nil(t, records[0].UpdatedAt)
	assert.NotNil(t, records[1].UpdatedAt)

	require.Len(t, observer.calls, 1)
	assert.Equal(t, recordedCall{appID: "app-1", op: "list"}, observer.calls[0])
}

func TestClientCreateRecordWrapsFields(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var payload map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, ok := payload["fields"]
		assert.True(t, ok, "payload must be wrapped in a fields object")

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"record_id":"rec-new","createdat":"2026-01-05T09:00:00Z","updatedat":null,"fields":{"name":"Carol"}}`))
	})

	record, err := client.CreateRecord(context.Background(), "app-1", map[string]string{"name": "Carol"})
	require.NoError(t, err)
	assert.Equal(t, "rec-new", record.RecordID)
}

func TestClientDeleteRecord(t *testing.T) {
	client, observer, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/app-1/records/rec-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteRecord(context.Background(), "app-1", "rec-1"))
	require.Len(t, observer.calls, 1)
	assert.Equal(t, "delete", observer.calls[0].op)
}

func TestClientMapsNotFound(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetRecord(context.Background(), "app-1", "missing")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestClientMapsValidationFailure(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"start_date is malformed"}`))
	})

	_, err := client.CreateRecord(context.Background(), "app-1", map[string]string{"title": "x"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "start_date")
}

func TestClientMapsServerError(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListRecords(context.Background(), "app-1")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestClientNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(config.LivingAppsConfig{BaseURL: server.URL, Timeout: time.Second}, nil, nil)

	_, err := client.ListRecords(context.Background(), "app-1")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
}
