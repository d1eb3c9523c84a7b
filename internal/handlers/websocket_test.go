package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"social_dashboard/internal/models"
	"social_dashboard/internal/service"
	"social_dashboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// memMetricRepo backs the real metrics service for full-stack fanout tests.
type memMetricRepo struct {
	byID map[string]models.Metric
}

func (f *memMetricRepo) Create(_ context.Context, m models.Metric) error {
	f.byID[m.ID] = m
	return nil
}

func (f *memMetricRepo) ListByOwner(_ context.Context, userID int) ([]models.Metric, error) {
	out := []models.Metric{}
	for _, m := range f.byID {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *memMetricRepo) UpdateValue(_ context.Context, id string, userID int, value string) (*models.Metric, error) {
	m, ok := f.byID[id]
	if !ok || m.UserID != userID {
		return nil, nil
	}
	m.Value = value
	f.byID[id] = m
	return &m, nil
}

func (f *memMetricRepo) Delete(_ context.Context, id string, userID int) (bool, error) {
	m, ok := f.byID[id]
	if !ok || m.UserID != userID {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

// newFanoutStack wires a running hub, the real metrics service and a test
// HTTP server together.
func newFanoutStack(t *testing.T) (*httptest.Server, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := ws.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		Metrics:       service.NewMetricsService(&memMetricRepo{byID: map[string]models.Metric{}}, hub),
	}
	h := NewHandler(s, hub, nil, t.TempDir(), nil)
	srv := httptest.NewServer(h.InitRoutes())

	return srv, func() {
		srv.Close()
		cancel()
	}
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) ws.Envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env ws.Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read envelope: %v", err)
	}
	return env
}

func TestWebSocket_CreateMetricBroadcastsToOtherClients(t *testing.T) {
	srv, teardown := newFanoutStack(t)
	defer teardown()

	// Client Y is connected before client X mutates anything.
	connY := dialWS(t, srv)
	defer connY.Close()
	time.Sleep(50 * time.Millisecond) // let registration settle

	// Client X creates a metric over HTTP.
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/metrics",
		bytes.NewBufferString(`{"title":"t","value":"5","category":"c"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("POST /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var created models.Metric
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// Y receives a dataUpdated event carrying the identical record.
	env := readEnvelope(t, connY)
	if env.Event != ws.EventDataUpdated {
		t.Fatalf("event=%q, want %q", env.Event, ws.EventDataUpdated)
	}
	var broadcast models.Metric
	if err := json.Unmarshal(env.Data, &broadcast); err != nil {
		t.Fatalf("unmarshal broadcast: %v", err)
	}
	if broadcast != created {
		t.Fatalf("broadcast %+v differs from HTTP response %+v", broadcast, created)
	}
}

func TestWebSocket_DeleteBroadcastsTombstone(t *testing.T) {
	srv, teardown := newFanoutStack(t)
	defer teardown()

	// Create first so there is something to delete.
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/metrics",
		bytes.NewBufferString(`{"title":"t","value":"5","category":"c"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("POST /metrics: %v", err)
	}
	var created models.Metric
	_ = json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	conn := dialWS(t, srv)
	defer conn.Close()
	time.Sleep(50 * time.Millisecond)

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/metrics/"+created.ID, nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err = srv.Client().Do(req)
	if err != nil {
		t.Fatalf("DELETE /metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	env := readEnvelope(t, conn)
	if env.Event != ws.EventDataUpdated {
		t.Fatalf("event=%q, want %q", env.Event, ws.EventDataUpdated)
	}
	var tomb models.MetricTombstone
	if err := json.Unmarshal(env.Data, &tomb); err != nil {
		t.Fatalf("unmarshal tombstone: %v", err)
	}
	if tomb.ID != created.ID || !tomb.Deleted {
		t.Fatalf("unexpected tombstone: %+v", tomb)
	}
}

func TestWebSocket_ClientInjectedUpdateIsRelayedVerbatim(t *testing.T) {
	srv, teardown := newFanoutStack(t)
	defer teardown()

	connX := dialWS(t, srv)
	defer connX.Close()
	connY := dialWS(t, srv)
	defer connY.Close()
	time.Sleep(50 * time.Millisecond)

	payload := json.RawMessage(`{"id":"m-1","title":"spoofed","value":"0","category":"c"}`)
	if err := connX.WriteJSON(ws.Envelope{Event: ws.EventUpdateData, Data: payload}); err != nil {
		t.Fatalf("write updateData: %v", err)
	}

	// Both peers get the relay, including the sender; no origin check.
	for _, conn := range []*websocket.Conn{connX, connY} {
		env := readEnvelope(t, conn)
		if env.Event != ws.EventDataUpdated {
			t.Fatalf("event=%q, want %q", env.Event, ws.EventDataUpdated)
		}
		var got, want map[string]any
		_ = json.Unmarshal(env.Data, &got)
		_ = json.Unmarshal(payload, &want)
		if len(got) != len(want) || got["title"] != "spoofed" {
			t.Fatalf("relay not verbatim: %s", env.Data)
		}
	}
}
