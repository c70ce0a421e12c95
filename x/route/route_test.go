// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/gorilla/mux"
	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	logger := log.NewNopLogger()

	router := mux.NewRouter()
	router.Methods("GET").Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(logger, w, r)
		responder.Log("test", "response")
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"error": null}`))
		})
	})

	req := httptest.NewRequest("GET", "/test", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	w.Flush()

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestRoute__problem(t *testing.T) {
	logger := log.NewNopLogger()

	router := mux.NewRouter()
	router.Methods("GET").Path("/bad").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(logger, w, r)
		responder.Problem(errors.New("bad error"))
	})

	req := httptest.NewRequest("GET", "/bad", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	w.Flush()

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, "bad error", body.Error)
}

func TestRoute__Context(t *testing.T) {
	var responder *Responder
	require.NotNil(t, responder.Context())

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	responder = NewResponder(log.NewNopLogger(), w, req)
	if span := opentracing.SpanFromContext(responder.Context()); span == nil {
		t.Error("expected span in context")
	}
}

func TestRoute__LogError(t *testing.T) {
	var buf bytes.Buffer
	logger := level.NewFilter(log.NewLogfmtLogger(&buf), level.AllowError())

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()

	responder := NewResponder(logger, w, req)
	responder.LogError("accounts", "read failed")

	out := buf.String()
	require.Contains(t, out, "level=error")
	require.Contains(t, out, "requestID=req-123")
	require.Contains(t, out, `accounts="read failed"`)
}

func TestRoute__nilResponder(t *testing.T) {
	var responder *Responder
	responder.Log("key", "value")
	responder.LogError("key", "value")
	responder.Respond(func(w http.ResponseWriter) {
		t.Error("shouldn't be called")
	})
	responder.Problem(errors.New("bad error"))
}

func TestRoute__CleanPath(t *testing.T) {
	if v := CleanPath("/api/accounts/GetAllAccounts"); v != "api-accounts-GetAllAccounts" {
		t.Errorf("got %q", v)
	}
	if v := CleanPath("/v1/accounts/19636f90bc95779e2488b0f7a45c4b68958a2ddd"); v != "v1-accounts" {
		t.Errorf("got %q", v)
	}
	// A value which looks like moov/base.ID, but is off by one character (last letter)
	if v := CleanPath("/v1/accounts/19636f90bc95779e2488b0f7a45c4b68958a2ddz"); v != "v1-accounts-19636f90bc95779e2488b0f7a45c4b68958a2ddz" {
		t.Errorf("got %q", v)
	}
}
