package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskpad/internal/config"
	"taskpad/internal/model"
	"taskpad/internal/serverapp"
)

type testApp struct {
	t       *testing.T
	handler http.Handler
	logs    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logs := &bytes.Buffer{}
	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: config.Default(),
		Logger: log.New(logs, "", 0),
	})
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return &testApp{t: t, handler: handler, logs: logs}
}

func (a *testApp) request(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) decodeTask(rec *httptest.ResponseRecorder) model.Task {
	a.t.Helper()
	var task model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		a.t.Fatalf("decode task: %v body=%s", err, rec.Body.String())
	}
	return task
}

func TestServer_HealthAndReadiness(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodGet, "/healthz", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("healthz expected 200, got %d", res.Code)
	}
	res = app.request(http.MethodGet, "/readyz", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("readyz expected 200, got %d", res.Code)
	}
}

func TestServer_TaskLifecycleOverTheWire(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodGet, "/api/tasks", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("list expected 200, got %d", res.Code)
	}

	created := app.decodeTask(app.request(http.MethodPost, "/api/tasks", map[string]any{
		"description": "write integration test",
	}))
	if created.ID == "" || created.IsCompleted {
		t.Fatalf("unexpected created task: %+v", created)
	}

	badRes := app.request(http.MethodPost, "/api/tasks", map[string]any{"description": "   "})
	if badRes.Code != http.StatusBadRequest {
		t.Fatalf("empty description expected 400, got %d", badRes.Code)
	}

	updRes := app.request(http.MethodPut, "/api/tasks/"+string(created.ID), map[string]any{
		"isCompleted": true,
	})
	if updRes.Code != http.StatusOK {
		t.Fatalf("update expected 200, got %d body=%s", updRes.Code, updRes.Body.String())
	}
	updated := app.decodeTask(updRes)
	if !updated.IsCompleted || updated.Description != "write integration test" {
		t.Fatalf("unexpected updated task: %+v", updated)
	}

	delRes := app.request(http.MethodDelete, "/api/tasks/"+string(created.ID), nil)
	if delRes.Code != http.StatusNoContent {
		t.Fatalf("delete expected 204, got %d", delRes.Code)
	}
	delAgain := app.request(http.MethodDelete, "/api/tasks/"+string(created.ID), nil)
	if delAgain.Code != http.StatusNotFound {
		t.Fatalf("second delete expected 404, got %d", delAgain.Code)
	}

	listRes := app.request(http.MethodGet, "/api/tasks", nil)
	var list []model.Task
	if err := json.Unmarshal(listRes.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty collection, got %+v", list)
	}
}

func TestServer_RequestIDAndAccessLog(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodGet, "/api/tasks", nil)
	if res.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected X-Request-Id header")
	}
	if !bytes.Contains(app.logs.Bytes(), []byte("http_request")) {
		t.Fatalf("expected access log entry, got %s", app.logs.String())
	}
}
