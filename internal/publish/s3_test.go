package publish

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-edge/internal/config"
)

func TestNewS3PublisherValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PublishConfig
		wantErr string
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: "publish config is required",
		},
		{
			name:    "missing bucket",
			cfg:     &config.PublishConfig{Key: "index.html", Region: "us-east-1"},
			wantErr: "publish bucket is required",
		},
		{
			name:    "missing key",
			cfg:     &config.PublishConfig{Bucket: "reports", Region: "us-east-1"},
			wantErr: "publish key is required",
		},
		{
			name:    "missing region",
			cfg:     &config.PublishConfig{Bucket: "reports", Key: "index.html"},
			wantErr: "publish region is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub, err := NewS3Publisher(context.Background(), tt.cfg, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, pub)
		})
	}
}

func TestNewS3Publisher(t *testing.T) {
	// Credential resolution is lazy in SDK v2, so constructing a client
	// does not require reachable AWS endpoints.
	cfg := &config.PublishConfig{
		Enabled: true,
		Bucket:  "race-edge-reports",
		Key:     "index.html",
		Region:  "us-east-1",
	}

	pub, err := NewS3Publisher(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, pub)
	assert.Equal(t, "race-edge-reports", pub.bucket)
	assert.Equal(t, "index.html", pub.key)
	assert.NotNil(t, pub.client)
	assert.NotNil(t, pub.logger)
}
