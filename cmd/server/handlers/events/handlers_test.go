package events

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"innerventory/cmd/server/testutil"
	"innerventory/internal/services/events"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const eventsEndpoint = "/api/v1/events"

// MockEventsService mocks the events service
type MockEventsService struct {
	mock.Mock
}

func (m *MockEventsService) Create(ctx context.Context, req events.CreateEventRequest) (*events.EventResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*events.EventResponse), args.Error(1)
}

func (m *MockEventsService) List(ctx context.Context) (*events.ListEventsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*events.ListEventsResponse), args.Error(1)
}

func (m *MockEventsService) Get(ctx context.Context, id bson.ObjectID) (*events.EventResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*events.EventResponse), args.Error(1)
}

func (m *MockEventsService) Update(ctx context.Context, id bson.ObjectID, req events.UpdateEventRequest) (*events.EventResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*events.EventResponse), args.Error(1)
}

func (m *MockEventsService) Replace(ctx context.Context, id bson.ObjectID, req events.ReplaceEventRequest) (*events.EventResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*events.EventResponse), args.Error(1)
}

func (m *MockEventsService) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupEventsTest(t *testing.T) (*MockEventsService, *fiber.App) {
	t.Helper()

	mockService := &MockEventsService{}
	app := testutil.CreateTestApp(t)
	v := testutil.CreateTestValidator(t)

	h := NewHandlers(mockService, v)

	grp := app.Group("/api/v1/events")
	grp.Post("/", h.Create)
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id", h.Update)
	grp.Put("/:id", h.Replace)
	grp.Delete("/:id", h.Delete)

	return mockService, app
}

func testEvent() *events.Event {
	return &events.Event{
		ID:       bson.NewObjectID(),
		Name:     "Spring Fitting Day",
		Date:     time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC),
		Revision: 2,
		Attendees: []events.Attendee{
			{Name: "Anna", SizeBefore: "34B", SizeAfter: "34C"},
		},
	}
}

func TestCreateEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setup      func(*MockEventsService)
		wantStatus int
	}{
		{
			name: "successful create",
			body: events.CreateEventRequest{Name: "Spring Fitting Day", Date: time.Now()},
			setup: func(m *MockEventsService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("events.CreateEventRequest")).
					Return(&events.EventResponse{Event: testEvent()}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name rejected before service",
			body:       events.CreateEventRequest{Date: time.Now()},
			setup:      func(*MockEventsService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing date rejected before service",
			body:       events.CreateEventRequest{Name: "Spring Fitting Day"},
			setup:      func(*MockEventsService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, app := setupEventsTest(t)
			tt.setup(mockService)

			resp, err := app.Test(testutil.CreateJSONRequest(http.MethodPost, eventsEndpoint+"/", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			mockService.AssertExpectations(t)
		})
	}
}

func TestListEvents(t *testing.T) {
	mockService, app := setupEventsTest(t)
	mockService.On("List", mock.Anything).
		Return(&events.ListEventsResponse{Events: []*events.Event{testEvent()}}, nil)

	resp, err := app.Test(testutil.CreateJSONRequest(http.MethodGet, eventsEndpoint+"/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body events.ListEventsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Events, 1)
	assert.Len(t, body.Events[0].Attendees, 1, "attendees ride along inside their event")
}

func TestGetEvent(t *testing.T) {
	ev := testEvent()

	tests := []struct {
		name       string
		id         string
		setup      func(*MockEventsService)
		wantStatus int
	}{
		{
			name: "found",
			id:   ev.ID.Hex(),
			setup: func(m *MockEventsService) {
				m.On("Get", mock.Anything, ev.ID).Return(&events.EventResponse{Event: ev}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown id answers 404",
			id:   bson.NewObjectID().Hex(),
			setup: func(m *MockEventsService) {
				m.On("Get", mock.Anything, mock.AnythingOfType("bson.ObjectID")).
					Return(nil, events.ErrEventNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed id answers 404",
			id:         "not-an-object-id",
			setup:      func(*MockEventsService) {},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, app := setupEventsTest(t)
			tt.setup(mockService)

			resp, err := app.Test(testutil.CreateJSONRequest(http.MethodGet, eventsEndpoint+"/"+tt.id, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			mockService.AssertExpectations(t)
		})
	}
}

func TestReplaceEvent(t *testing.T) {
	ev := testEvent()
	validBody := events.ReplaceEventRequest{
		Name:      ev.Name,
		Date:      ev.Date,
		Attendees: append(ev.Attendees, events.Attendee{Name: "Dana"}),
		Revision:  ev.Revision,
	}

	tests := []struct {
		name       string
		body       any
		setup      func(*MockEventsService)
		wantStatus int
	}{
		{
			name: "successful replace",
			body: validBody,
			setup: func(m *MockEventsService) {
				m.On("Replace", mock.Anything, ev.ID, mock.AnythingOfType("events.ReplaceEventRequest")).
					Return(&events.EventResponse{Event: ev}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "stale revision answers 409",
			body: validBody,
			setup: func(m *MockEventsService) {
				m.On("Replace", mock.Anything, ev.ID, mock.AnythingOfType("events.ReplaceEventRequest")).
					Return(nil, events.ErrRevisionConflict)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "vanished event answers 404",
			body: validBody,
			setup: func(m *MockEventsService) {
				m.On("Replace", mock.Anything, ev.ID, mock.AnythingOfType("events.ReplaceEventRequest")).
					Return(nil, events.ErrEventNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing name rejected before service",
			body:       events.ReplaceEventRequest{Date: ev.Date},
			setup:      func(*MockEventsService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, app := setupEventsTest(t)
			tt.setup(mockService)

			resp, err := app.Test(testutil.CreateJSONRequest(http.MethodPut, eventsEndpoint+"/"+ev.ID.Hex(), tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			mockService.AssertExpectations(t)
		})
	}
}

func TestUpdateEvent(t *testing.T) {
	ev := testEvent()
	mockService, app := setupEventsTest(t)
	mockService.On("Update", mock.Anything, ev.ID, mock.AnythingOfType("events.UpdateEventRequest")).
		Return(&events.EventResponse{Event: ev}, nil)

	name := "Renamed"
	resp, err := app.Test(testutil.CreateJSONRequest(http.MethodPatch, eventsEndpoint+"/"+ev.ID.Hex(), events.UpdateEventRequest{Name: &name}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockService.AssertExpectations(t)
}

func TestDeleteEvent(t *testing.T) {
	ev := testEvent()

	tests := []struct {
		name       string
		setup      func(*MockEventsService)
		wantStatus int
	}{
		{
			name: "successful delete",
			setup: func(m *MockEventsService) {
				m.On("Delete", mock.Anything, ev.ID).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "unknown event answers 404",
			setup: func(m *MockEventsService) {
				m.On("Delete", mock.Anything, ev.ID).Return(events.ErrEventNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, app := setupEventsTest(t)
			tt.setup(mockService)

			resp, err := app.Test(testutil.CreateJSONRequest(http.MethodDelete, eventsEndpoint+"/"+ev.ID.Hex(), nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			mockService.AssertExpectations(t)
		})
	}
}
