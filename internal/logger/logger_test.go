// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package logger

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	log := NewLogger("test-role")
	require.NotNil(t, log)
}

func TestNop_DiscardsOutput(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)

	// must not panic and must not write anywhere
	log.Info().Str("key", "value").Msg("discarded")
}

func TestFromContext_RoundTrip(t *testing.T) {
	parent := Nop()
	ctx := parent.WithContext(context.Background())

	got := FromContext(ctx)
	require.NotNil(t, got)
	assert.Equal(t, parent.GetLevel(), got.GetLevel())
}

func TestFromRequest_RoundTrip(t *testing.T) {
	parent := Nop()
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(parent.WithContext(req.Context()))

	got := FromRequest(req)
	require.NotNil(t, got)
}

func TestGetChildLogger_IndependentOfParent(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()

	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}
