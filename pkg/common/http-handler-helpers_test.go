package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSessionCookieIssuedOnce(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/view", nil)
	w := httptest.NewRecorder()
	id := HandleSessionCookie(nil, w, r)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("Expected uuid session id, got %s", id)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != id {
		t.Fatalf("Expected session cookie with %s, got %v", id, cookies)
	}

	r = httptest.NewRequest(http.MethodGet, "/view", nil)
	r.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	if again := HandleSessionCookie(nil, w, r); again != id {
		t.Errorf("Expected same session id, got %s", again)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Errorf("Expected no new cookie for known session")
	}
}

func TestSessionCookieReplacesGarbage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/view", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-uuid"})
	id := HandleSessionCookie(nil, httptest.NewRecorder(), r)
	if id == "not-a-uuid" {
		t.Errorf("Expected a fresh session id")
	}
}

func TestJsonHandlerStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{NotFound(errors.New("missing")), http.StatusNotFound},
		{BadRequest(errors.New("broken")), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		h := JsonHandler(nil, func(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
			if tc.err != nil {
				return tc.err
			}
			return enc.Encode(sessionId)
		})
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != tc.status {
			t.Errorf("Expected status %d for %v, got %d", tc.status, tc.err, w.Code)
		}
	}
}
