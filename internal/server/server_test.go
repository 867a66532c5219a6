// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therealrogden/taskkeeper/internal/config"
	"github.com/therealrogden/taskkeeper/internal/logger"
)

func TestNewServer(t *testing.T) {
	handler := http.NewServeMux()

	t.Run("address required", func(t *testing.T) {
		_, err := NewServer(handler, config.Server{}, logger.Nop())
		assert.ErrorIs(t, err, errNoAddressConfigured)
	})

	t.Run("configured address", func(t *testing.T) {
		srv, err := NewServer(handler, config.Server{HTTPAddress: "localhost:8080"}, logger.Nop())
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})
}
