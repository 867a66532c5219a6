// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package utils

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_Success(t *testing.T) {
	rr := httptest.NewRecorder()

	n, err := WriteJSON(rr, map[string]string{"status": "ok"}, 200)
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Equal(t, 200, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestWriteJSON_MarshalError(t *testing.T) {
	rr := httptest.NewRecorder()

	// NaN is not representable in JSON
	_, err := WriteJSON(rr, math.NaN(), 200)
	assert.Error(t, err)
	assert.Equal(t, 500, rr.Code)
}
