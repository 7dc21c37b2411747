package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"rerate/obs"
	"rerate/services"
	"rerate/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestRerate returns handlers backed by the default catalog and a
// private metrics registry.
func newTestRerate(t *testing.T) (*Rerate, *obs.Metrics) {
	t.Helper()
	m := obs.NewMetrics("test", prometheus.NewRegistry())
	return NewRerate(services.NewEngine(nil), zerolog.Nop(), m), m
}

// serve runs handler against a JSON request and returns the recorder.
func serve(t *testing.T, handler func(*core.RequestEvent) error, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	app := testhelpers.NewTestApp(t)

	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = testhelpers.NewJSONRequest(t, method, target, body)
	}
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}
