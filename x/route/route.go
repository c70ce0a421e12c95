// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	moovhttp "github.com/moov-io/base/http"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	// Prometheus Metrics
	Histogram = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Name: "http_response_duration_seconds",
		Help: "Histogram representing the http response durations",
	}, []string{"route"})
)

// Responder is the single place a handler turns its outcome into an HTTP response.
// Every error funnels through Problem.
type Responder struct {
	XRequestID string

	logger log.Logger

	request *http.Request
	span    opentracing.Span

	writer *moovhttp.ResponseWriter
}

func NewResponder(logger log.Logger, w http.ResponseWriter, r *http.Request) *Responder {
	resp := &Responder{
		XRequestID: moovhttp.GetRequestID(r),
		logger:     logger,
		request:    r,
	}
	resp.span = resp.Span()
	resp.writer = wrapResponseWriter(logger, w, r)
	return resp
}

// Context returns the request's context carrying this responder's span, so
// downstream calls can record child spans.
func (r *Responder) Context() context.Context {
	if r == nil || r.request == nil {
		return context.Background()
	}
	if r.span == nil {
		return r.request.Context()
	}
	return opentracing.ContextWithSpan(r.request.Context(), r.span)
}

func (r *Responder) Log(kvpairs ...interface{}) {
	if r == nil || r.writer == nil {
		return
	}
	r.log(r.logger, kvpairs...)
}

// LogError logs kvpairs at the error level.
func (r *Responder) LogError(kvpairs ...interface{}) {
	if r == nil || r.writer == nil {
		return
	}
	r.log(level.Error(r.logger), kvpairs...)
}

func (r *Responder) log(logger log.Logger, kvpairs ...interface{}) {
	var args = []interface{}{
		"requestID", r.XRequestID,
	}
	args = append(args, kvpairs...)
	logger.Log(args...)
}

func (r *Responder) Respond(fn func(http.ResponseWriter)) {
	if r == nil {
		return
	}
	r.finishSpan(nil)
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	fn(r.writer)
}

// Problem writes err as a 400 response with an {"error": "..."} body.
func (r *Responder) Problem(err error) {
	if r == nil {
		return
	}
	r.finishSpan(err)
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	moovhttp.Problem(r.writer, err)
}

func (r *Responder) finishSpan(err error) {
	if r == nil || r.span == nil {
		return
	}
	if err != nil {
		ext.Error.Set(r.span, true)
		r.span.SetTag("error.message", err.Error())
	}
	r.span.Finish()
}

func wrapResponseWriter(logger log.Logger, w http.ResponseWriter, r *http.Request) *moovhttp.ResponseWriter {
	name := fmt.Sprintf("%s-%s", strings.ToLower(r.Method), CleanPath(r.URL.Path))
	return moovhttp.Wrap(logger, Histogram.With("route", name), w, r)
}

var baseIdRegex = regexp.MustCompile(`([a-f0-9]{40})`)

// CleanPath takes a URL path and formats it for Prometheus metrics
//
// This method replaces /'s with -'s and strips out moov/base.ID() values from URL path slugs.
func CleanPath(path string) string {
	parts := strings.Split(path, "/")
	var out []string
	for i := range parts {
		if parts[i] == "" || baseIdRegex.MatchString(parts[i]) {
			continue // assume it's a moov/base.ID() value
		}
		out = append(out, parts[i])
	}
	return strings.Join(out, "-")
}
