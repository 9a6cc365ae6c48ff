// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-journal-keeper/internal/config"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
)

func TestNewAppInfoService_EmptyVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.ClientApp{}, logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestGetAppVersion(t *testing.T) {
	tests := []string{"1.0.0", "v1.2.3-beta+build.42"}

	for _, version := range tests {
		t.Run(version, func(t *testing.T) {
			svc, err := NewAppInfoService(config.ClientApp{Version: version}, logger.Nop())
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			// the version does not depend on the context
			assert.Equal(t, version, svc.GetAppVersion(ctx))
			assert.Equal(t, version, svc.GetAppVersion(context.Background()))
		})
	}
}
