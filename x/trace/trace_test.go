// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package trace

import (
	"testing"

	"github.com/bbbank/accounts-api/pkg/config"

	"github.com/go-kit/kit/log"
	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/require"
)

func TestConstantTracing(t *testing.T) {
	tracer, closer, err := NewConstantTracer(log.NewNopLogger(), "test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { closer.Close() })

	// quick test
	createParentWithChild(tracer)
}

func TestProbabilisticTracing(t *testing.T) {
	tracer, closer, err := NewProbabilisticTracer(log.NewNopLogger(), "test", 0.5)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { closer.Close() })

	// quick test
	createParentWithChild(tracer)
}

func TestNewTracer__disabled(t *testing.T) {
	tracer, closer, err := NewTracer(log.NewNopLogger(), config.Tracing{Enabled: false})
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	require.IsType(t, opentracing.NoopTracer{}, tracer)
	require.IsType(t, opentracing.NoopTracer{}, opentracing.GlobalTracer())

	createParentWithChild(tracer)
}

func TestNewTracer__enabled(t *testing.T) {
	tracer, closer, err := NewTracer(log.NewNopLogger(), config.Tracing{
		Enabled:     true,
		ServiceName: "test",
		SampleRate:  0.1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { closer.Close() })

	createParentWithChild(tracer)
}

func TestJaegerLogger(t *testing.T) {
	l := &jaegerLogger{inner: log.NewNopLogger()}
	l.Error("bad thing")
	l.Infof("reporting span %s", "abc")
}

func createParentWithChild(tracer opentracing.Tracer) {
	parent := tracer.StartSpan("say-hello")

	child := tracer.StartSpan("child", opentracing.ChildOf(parent.Context()))
	child.Finish()

	parent.Finish()
}
