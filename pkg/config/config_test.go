// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recgraph/predictor/pkg/recommender"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "predictor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

const validYAML = `
redis:
  addr: "localhost:6400"
  db: 2
server:
  listen_addr: "127.0.0.1:9000"
  metrics: false
recommenders:
  - class: courses
    limit: 10
    concurrency: 4
    matrices:
      - label: users
        weight: 3
      - label: tags
        weight: 2
      - label: topics
        weight: 1
`

func TestLoad(t *testing.T) {
	t.Parallel()

	settings, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "localhost:6400", settings.Redis.Addr)
	assert.Equal(t, 2, settings.Redis.DB)
	assert.Equal(t, "127.0.0.1:9000", settings.Server.ListenAddr)
	assert.False(t, settings.Server.Metrics)

	require.Len(t, settings.Recommenders, 1)
	rec := settings.Recommenders[0]
	assert.Equal(t, "courses", rec.Class)
	assert.Equal(t, int64(10), rec.Limit)
	assert.Equal(t, 4, rec.Concurrency)
	require.Len(t, rec.Matrices, 3)
	assert.Equal(t, "users", rec.Matrices[0].Label)
	assert.InDelta(t, 3.0, rec.Matrices[0].Weight, 0)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	settings, err := Load(writeConfig(t, `
recommenders:
  - class: courses
    matrices:
      - label: users
        weight: 1
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultRedisAddr, settings.Redis.Addr)
	assert.Equal(t, DefaultListenAddr, settings.Server.ListenAddr)
	assert.True(t, settings.Server.Metrics)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("PREDICTOR_REDIS_ADDR", "override:6379")

	settings, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, "override:6379", settings.Redis.Addr)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadInvalidSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "no recommenders",
			yaml: `
redis:
  addr: "localhost:6379"
`,
		},
		{
			name: "invalid matrix weight",
			yaml: `
recommenders:
  - class: courses
    matrices:
      - label: users
        weight: 0
`,
		},
		{
			name: "duplicate class",
			yaml: `
recommenders:
  - class: courses
    matrices:
      - label: users
        weight: 1
  - class: courses
    matrices:
      - label: tags
        weight: 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestRecommenderLookup(t *testing.T) {
	t.Parallel()

	settings, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	rec, ok := settings.Recommender("courses")
	require.True(t, ok)
	assert.Equal(t, "courses", rec.Class)

	_, ok = settings.Recommender("bogus")
	assert.False(t, ok)
}

func TestRecommenderConfigConversion(t *testing.T) {
	t.Parallel()

	settings := RecommenderSettings{
		Class:       "courses",
		Limit:       5,
		Concurrency: 2,
		Matrices: []MatrixSettings{
			{Label: "users", Weight: 3},
		},
	}

	cfg := settings.RecommenderConfig()
	assert.Equal(t, recommender.Config{
		Class:           "courses",
		Matrices:        []recommender.MatrixConfig{{Label: "users", Weight: 3}},
		SimilarityLimit: 5,
		Concurrency:     2,
	}, cfg)
}
