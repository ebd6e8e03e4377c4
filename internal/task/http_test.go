package task

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskpad/internal/model"
)

func jsonReq(method, path string, body any) *http.Request {
	var b []byte
	if body != nil {
		b, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) model.Task {
	t.Helper()
	var task model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode task: %v body=%s", err, rec.Body.String())
	}
	return task
}

func TestTasksRoot_CreateAndList(t *testing.T) {
	h := NewHandler(NewMemoryStore())

	rec := httptest.NewRecorder()
	h.TasksRoot(rec, jsonReq(http.MethodPost, "/api/tasks", map[string]any{"description": "buy milk"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	created := decodeTask(t, rec)
	if created.ID == "" || created.Description != "buy milk" || created.IsCompleted {
		t.Fatalf("unexpected created task: %+v", created)
	}

	rec = httptest.NewRecorder()
	h.TasksRoot(rec, jsonReq(http.MethodGet, "/api/tasks", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestTasksRoot_CreateEmptyDescription(t *testing.T) {
	store := NewMemoryStore()
	h := NewHandler(store)

	for _, desc := range []string{"", "   "} {
		rec := httptest.NewRecorder()
		h.TasksRoot(rec, jsonReq(http.MethodPost, "/api/tasks", map[string]any{"description": desc}))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("description %q: expected 400, got %d", desc, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode error body: %v", err)
		}
		if body["message"] == "" {
			t.Fatalf("expected error message, got %s", rec.Body.String())
		}
	}
	if len(store.List()) != 0 {
		t.Fatalf("collection should be unchanged")
	}
}

func TestTasksRoot_BadJSON(t *testing.T) {
	h := NewHandler(NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.TasksRoot(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTasksSub_UpdateDeleteFlow(t *testing.T) {
	store := NewMemoryStore()
	h := NewHandler(store)
	created, err := store.Create("take out trash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec := httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodPut, "/api/tasks/"+string(created.ID), map[string]any{"isCompleted": true}))
	if rec.Code != http.StatusOK {
		t.Fatalf("update expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	updated := decodeTask(t, rec)
	if !updated.IsCompleted || updated.Description != "take out trash" {
		t.Fatalf("unexpected updated task: %+v", updated)
	}

	rec = httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodGet, "/api/tasks/"+string(created.ID), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodDelete, "/api/tasks/"+string(created.ID), nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodDelete, "/api/tasks/"+string(created.ID), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete expected 404, got %d", rec.Code)
	}
}

func TestTasksSub_UnknownID(t *testing.T) {
	h := NewHandler(NewMemoryStore())

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"get", jsonReq(http.MethodGet, "/api/tasks/task_missing", nil)},
		{"update", jsonReq(http.MethodPut, "/api/tasks/task_missing", map[string]any{"isCompleted": true})},
		{"delete", jsonReq(http.MethodDelete, "/api/tasks/task_missing", nil)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.TasksSub(rec, tc.req)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", rec.Code)
			}
		})
	}
}

func TestTasksSub_UpdateEmptyDescription(t *testing.T) {
	store := NewMemoryStore()
	h := NewHandler(store)
	created, err := store.Create("water plants")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec := httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodPut, "/api/tasks/"+string(created.ID), map[string]any{"description": "  "}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	got, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description != "water plants" {
		t.Fatalf("task should be unchanged, got %+v", got)
	}
}

func TestTasks_MethodNotAllowed(t *testing.T) {
	h := NewHandler(NewMemoryStore())

	rec := httptest.NewRecorder()
	h.TasksRoot(rec, jsonReq(http.MethodDelete, "/api/tasks", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.TasksSub(rec, jsonReq(http.MethodPost, "/api/tasks/task_x", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
