package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"innerventory/internal/services/auth"
	"innerventory/internal/services/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestSignInStoresToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/sign-in":
			_ = json.NewEncoder(w).Encode(auth.AuthResponse{
				User:  &auth.User{Email: "dana@example.com", Role: auth.RoleVolunteer},
				Token: "test-token",
			})
		case "/api/v1/events":
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(events.ListEventsResponse{Events: []*events.Event{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	user, err := c.SignIn(context.Background(), "dana@example.com", "Password123")
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)

	_, err = c.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth, "token from sign-in rides on later requests")
}

func TestListEvents(t *testing.T) {
	want := []*events.Event{
		{ID: bson.NewObjectID(), Name: "Spring Fitting Day", Revision: 2},
		{ID: bson.NewObjectID(), Name: "Autumn Shelter Visit"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/events", r.URL.Path)
		_ = json.NewEncoder(w).Encode(events.ListEventsResponse{Events: want})
	}))
	defer srv.Close()

	got, err := New(srv.URL).ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, int64(2), got[0].Revision)
}

func TestReplaceEventSendsRevision(t *testing.T) {
	id := bson.NewObjectID()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/events/"+id.Hex(), r.URL.Path)

		var req events.ReplaceEventRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(3), req.Revision)
		assert.Len(t, req.Attendees, 1)

		_ = json.NewEncoder(w).Encode(events.EventResponse{Event: &events.Event{ID: id, Revision: 4}})
	}))
	defer srv.Close()

	ev, err := New(srv.URL).ReplaceEvent(context.Background(), id, events.ReplaceEventRequest{
		Name:      "Spring Fitting Day",
		Date:      time.Now(),
		Attendees: []events.Attendee{{Name: "Anna"}},
		Revision:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), ev.Revision)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"missing event", http.StatusNotFound, events.ErrEventNotFound},
		{"stale revision", http.StatusConflict, events.ErrRevisionConflict},
		{"server failure", http.StatusInternalServerError, ErrTransport},
		{"bad request", http.StatusBadRequest, ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":"nope"}`, tt.status)
			}))
			defer srv.Close()

			_, err := New(srv.URL).ListEvents(context.Background())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUnreachableServerIsTransportError(t *testing.T) {
	// Port 0 is never listening.
	c := New("http://127.0.0.1:0")
	_, err := c.ListEvents(context.Background())
	require.ErrorIs(t, err, ErrTransport)
}

func TestDeleteEventSendsNoBody(t *testing.T) {
	id := bson.NewObjectID()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/events/"+id.Hex(), r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeleteEvent(context.Background(), id))
}
