package mechapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, nil)
}

func TestListMechanics_DecodesArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mechanics", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"name":"Taller Ruiz","email":"ruiz@example.com","workshop":{"id":4,"name":"Ruiz","address":"Av. 1","schedule":"9:00 a 17:00"}},{"id":2,"name":"Sin taller","workshop":null}]`))
	})

	res := c.ListMechanics(context.Background())

	require.True(t, res.OK())
	require.Len(t, res.Value, 2)
	assert.Equal(t, "9:00 a 17:00", res.Value[0].Workshop.Schedule)
	assert.Nil(t, res.Value[1].Workshop)
}

func TestListMechanics_NonArrayBecomesEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":"nope"}`))
	})

	res := c.ListMechanics(context.Background())

	require.True(t, res.OK())
	assert.NotNil(t, res.Value)
	assert.Empty(t, res.Value)
}

func TestUnauthorizedAndForbidden(t *testing.T) {
	status := http.StatusUnauthorized
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error_code":"unauthenticated","message":"Inicia sesión."}`))
	})

	res := c.UnavailableDays(context.Background(), 3)
	assert.Equal(t, StatusUnauthenticated, res.Status)
	assert.Equal(t, "unauthenticated", res.Code)
	assert.ErrorIs(t, res.Err, ErrUnexpectedStatus)

	status = http.StatusForbidden
	assert.Equal(t, StatusForbidden, c.Profile(context.Background()).Status)
}

func TestUnavailableSlots_Query(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("mechanicId"))
		assert.Equal(t, "2025-03-13", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`{"times":["09:00","12:00"]}`))
	})

	res := c.UnavailableSlots(context.Background(), 7, "2025-03-13")

	require.True(t, res.OK())
	assert.Equal(t, []string{"09:00", "12:00"}, res.Value)
}

func TestCreateAppointment_ErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, uint(5), req.MechanicID)

		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error_code":"time_conflict","message":"El horario ya fue reservado."}`))
	})

	res := c.CreateAppointment(context.Background(), CreateAppointmentRequest{MechanicID: 5, Service: "Afinación"})

	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, http.StatusConflict, res.HTTPStatus)
	assert.Equal(t, "El horario ya fue reservado.", res.Message)
}

func TestTransportFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond, nil)

	res := c.ListWorkshops(context.Background())

	assert.Equal(t, StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, ErrTransport)
}
