// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package hooks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	return NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func appendFn(s string) Func {
	return func(_ context.Context, data any) (any, error) {
		return append(data.([]string), s), nil
	}
}

func TestRegistry_PriorityOrder(t *testing.T) {
	r := newTestRegistry()
	r.Register("h", Handler{Name: "late", Plugin: "p", Priority: 10, Fn: appendFn("late")})
	r.Register("h", Handler{Name: "early", Plugin: "p", Priority: -5, Fn: appendFn("early")})
	r.Register("h", Handler{Name: "mid1", Plugin: "p", Fn: appendFn("mid1")})
	r.Register("h", Handler{Name: "mid2", Plugin: "p", Fn: appendFn("mid2")})

	out, err := Filter(context.Background(), r, "h", []string{})
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "mid1", "mid2", "late"}, out)
}

func TestRegistry_NoHandlersPassesThrough(t *testing.T) {
	r := newTestRegistry()

	out, err := Filter(context.Background(), r, "nothing", []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, out)
	assert.False(t, r.HasHandlers("nothing"))
}

func TestRegistry_ErrorStopsChain(t *testing.T) {
	r := newTestRegistry()
	boom := errors.New("boom")
	called := false
	r.RegisterFunc("h", "fails", "p", func(context.Context, any) (any, error) { return nil, boom })
	r.Register("h", Handler{Name: "after", Plugin: "p", Priority: 1, Fn: func(_ context.Context, d any) (any, error) {
		called = true
		return d, nil
	}})

	_, err := Filter(context.Background(), r, "h", []string{})
	require.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestRegistry_InactivePluginSkipped(t *testing.T) {
	r := newTestRegistry()
	r.RegisterFunc("h", "a", "on", appendFn("a"))
	r.RegisterFunc("h", "b", "off", appendFn("b"))
	r.SetIsPluginActive(func(p string) bool { return p != "off" })

	out, err := Filter(context.Background(), r, "h", []string{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, out)
}

func TestRegistry_Unregister(t *testing.T) {
	r := newTestRegistry()
	r.RegisterFunc("h1", "a", "gone", appendFn("a"))
	r.RegisterFunc("h2", "b", "gone", appendFn("b"))
	r.RegisterFunc("h2", "c", "stays", appendFn("c"))

	r.Unregister("gone")

	assert.False(t, r.HasHandlers("h1"))
	out, err := Filter(context.Background(), r, "h2", []string{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, out)
}

func TestFilter_WrongType(t *testing.T) {
	r := newTestRegistry()
	r.RegisterFunc("h", "bad", "p", func(context.Context, any) (any, error) { return 42, nil })

	_, err := Filter(context.Background(), r, "h", []string{})
	assert.Error(t, err)
}

func TestFilter_NilRegistry(t *testing.T) {
	out, err := Filter[[]string](context.Background(), nil, "h", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, out)
}
