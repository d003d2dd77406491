package bootstrap

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/internal/application/prioritization"
	"github.com/turtacn/admet-prioritizer/internal/config"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

func exampleRequest(app *App) *prioritization.AnalysisRequest {
	return &prioritization.AnalysisRequest{Source: ctypes.SourceExample, Options: app.Options()}
}

func TestNew_MemoryBackend(t *testing.T) {
	cfg := config.NewDefaultConfig()
	app, err := New(context.Background(), cfg, nil, Options{StoreRuns: true})
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Collector)
	assert.Nil(t, app.Publisher)
	require.Len(t, app.Checks, 1)
	assert.Equal(t, "run_store", app.Checks[0].Name)

	res, err := app.Runner.Run(context.Background(), exampleRequest(app))
	require.NoError(t, err)
	_, err = app.Runner.Lookup(context.Background(), res.Report.RunID)
	assert.NoError(t, err)
}

func TestNew_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.NewDefaultConfig()
	cfg.Artifacts.Backend = "redis"
	cfg.Redis.Addr = mr.Addr()

	app, err := New(context.Background(), cfg, nil, Options{StoreRuns: true})
	require.NoError(t, err)
	defer app.Close()

	names := []string{}
	for _, c := range app.Checks {
		names = append(names, c.Name)
		assert.NoError(t, c.Fn(context.Background()), c.Name)
	}
	assert.ElementsMatch(t, []string{"redis", "run_store"}, names)

	res, err := app.Runner.Run(context.Background(), exampleRequest(app))
	require.NoError(t, err)
	assert.True(t, mr.Exists(cfg.Redis.KeyPrefix+"run:"+string(res.Report.RunID)))
}

func TestNew_RedisUnavailable(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Artifacts.Backend = "redis"
	cfg.Redis.Addr = "127.0.0.1:1"
	_, err := New(context.Background(), cfg, nil, Options{StoreRuns: true})
	assert.Error(t, err)
}

func TestNew_WithoutStore(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Metrics.Enabled = false
	app, err := New(context.Background(), cfg, nil, Options{})
	require.NoError(t, err)
	assert.Nil(t, app.Collector)
	assert.False(t, app.Runner.Stored())
	assert.NoError(t, app.Close())
	assert.NoError(t, app.Close())
}

func TestUpdatePipeline(t *testing.T) {
	app, err := New(context.Background(), config.NewDefaultConfig(), nil, Options{})
	require.NoError(t, err)

	before := app.Options()
	p := app.Pipeline()
	p.Rules.MaxViolations = 0
	require.NoError(t, app.UpdatePipeline(p))
	assert.Equal(t, 0, app.Options().Evaluation.Rules.MaxViolations)
	assert.Equal(t, 1, before.Evaluation.Rules.MaxViolations, "earlier snapshots are unaffected")

	p.DepictionSize = 1
	assert.Error(t, app.UpdatePipeline(p))
	assert.Equal(t, 0, app.Options().Evaluation.Rules.MaxViolations)
}

//Personal.AI order the ending
