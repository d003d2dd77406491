package prioritization

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/cache/memory"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	"github.com/turtacn/admet-prioritizer/pkg/types/common"
)

func TestRunStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore(memory.NewCache(time.Minute, 0, nil), time.Minute, nil)
	report := runExample(t)

	require.NoError(t, store.Save(ctx, report))

	got, err := store.Get(ctx, report.RunID)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, got.RunID)
	assert.Equal(t, positions(report), positions(got))
	assert.Equal(t, report.Summary().Passed, got.Summary().Passed)
	assert.Equal(t, report.Candidates[0].Depiction, got.Candidates[0].Depiction)
	assert.True(t, report.CreatedAt.Equal(got.CreatedAt))

	want, err := ExportCSV(report)
	require.NoError(t, err)
	have, err := ExportCSV(got)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(have))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRunStore_NotFound(t *testing.T) {
	store := NewRunStore(memory.NewCache(time.Minute, 0, nil), time.Minute, nil)

	_, err := store.Get(context.Background(), common.NewID())
	assert.True(t, errors.IsCode(err, errors.CodeRunNotFound))
	assert.True(t, errors.IsNotFound(err))
}

func TestRunStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore(memory.NewCache(time.Minute, 0, nil), time.Minute, nil)
	report := &Report{RunID: common.NewID()}

	require.NoError(t, store.Save(ctx, report))
	require.NoError(t, store.Delete(ctx, report.RunID))

	_, err := store.Get(ctx, report.RunID)
	assert.True(t, errors.IsNotFound(err))
}

func TestRunStore_RejectsReportWithoutID(t *testing.T) {
	store := NewRunStore(memory.NewCache(time.Minute, 0, nil), time.Minute, nil)
	assert.True(t, errors.IsValidation(store.Save(context.Background(), &Report{})))
	assert.True(t, errors.IsValidation(store.Save(context.Background(), nil)))
}

//Personal.AI order the ending
