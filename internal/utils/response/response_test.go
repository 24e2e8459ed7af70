package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BehruzDev0000/learning-center/internal/types"
)

func TestFromErrorTaxonomy(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{types.ErrInvalidDateRange, http.StatusBadRequest},
		{types.ErrDuplicateEmail, http.StatusConflict},
		{types.ErrDuplicatePhone, http.StatusConflict},
		{types.ErrCourseNotFound, http.StatusNotFound},
		{types.ErrStudentNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		status, resp := FromError(tc.err)
		if status != tc.wantStatus {
			t.Errorf("FromError(%v): status = %d, want %d", tc.err, status, tc.wantStatus)
		}
		if resp.Status != StatusError {
			t.Errorf("FromError(%v): status field = %q, want %q", tc.err, resp.Status, StatusError)
		}
		if resp.Error != tc.err.Error() {
			t.Errorf("FromError(%v): message = %q, want %q", tc.err, resp.Error, tc.err.Error())
		}
	}
}

// Wrapped sentinels still map: services wrap with %w on the way up.
func TestFromErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("create student: %w", types.ErrDuplicateEmail)
	status, resp := FromError(wrapped)
	if status != http.StatusConflict {
		t.Errorf("status = %d, want %d", status, http.StatusConflict)
	}
	if resp.Error != types.ErrDuplicateEmail.Error() {
		t.Errorf("message = %q", resp.Error)
	}
}

// Store/cache internals must never reach a client.
func TestFromErrorDoesNotLeak(t *testing.T) {
	status, resp := FromError(errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", status, http.StatusInternalServerError)
	}
	if resp.Error != "internal server error" {
		t.Errorf("message = %q, want the generic message", resp.Error)
	}
	if strings.Contains(resp.Error, "10.0.0.5") {
		t.Error("internal error detail leaked to the client")
	}
}

func TestWriteEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteEnvelope(rec, Success(http.StatusCreated, map[string]int{"id": 1})); err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("http status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Status != http.StatusCreated || env.Message != "success" {
		t.Errorf("envelope = %+v", env)
	}
}

// 204 cannot carry a body, so the deletion confirmation goes out as a
// 200 whose envelope still says 204.
func TestWriteEnvelopeDelete(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteEnvelope(rec, Deleted("course")); err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("http status = %d, want %d", rec.Code, http.StatusOK)
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Status != http.StatusNoContent {
		t.Errorf("envelope status = %d, want %d", env.Status, http.StatusNoContent)
	}
	data, ok := env.Data.(map[string]any)
	if !ok || data["message"] != "course successfully deleted" {
		t.Errorf("envelope data = %#v", env.Data)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteError(rec, types.ErrCourseNotFound); err != nil {
		t.Fatalf("WriteError: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("http status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Status != StatusError || resp.Error != types.ErrCourseNotFound.Error() {
		t.Errorf("response = %+v", resp)
	}
}
