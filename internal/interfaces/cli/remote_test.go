package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/internal/apiserver"
	"github.com/turtacn/admet-prioritizer/internal/bootstrap"
	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/pkg/client"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

func startServer(t *testing.T) string {
	t.Helper()
	app, err := bootstrap.New(context.Background(), config.NewDefaultConfig(), nil, bootstrap.Options{StoreRuns: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	srv := httptest.NewServer(apiserver.NewHandler(app, "test"))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestAnalyzeRemote_Table(t *testing.T) {
	url := startServer(t)
	res := runCLI(t, "", "analyze", "--server", url, "--example")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Passed (Drug-like): 4")
	assert.Contains(t, res.stdout, "Invalid input: 2")
	assert.Contains(t, res.stdout, "run ")
}

func TestAnalyzeRemote_JSONAndCSV(t *testing.T) {
	url := startServer(t)

	res := runCLI(t, "", "analyze", "--server", url, "--example", "-o", "json")
	require.NoError(t, res.err)
	var resp ctypes.PrioritizeResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Len(t, resp.Candidates, 6)

	res = runCLI(t, "SMILES,Docking_Score\nCCO,-5.0\nc1ccccc1,-7.5\n", "analyze", "--server", url, "--stdin", "-o", "csv")
	require.NoError(t, res.err)
	rows, err := csv.NewReader(strings.NewReader(res.stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "c1ccccc1", rows[1][0])
}

func TestAnalyzeRemote_ExportAndDepictions(t *testing.T) {
	url := startServer(t)
	dir := t.TempDir()
	export := filepath.Join(dir, "out.csv")
	img := filepath.Join(dir, "img")

	res := runCLI(t, "", "analyze", "--server", url, "--example", "--export", export, "--depictions", img)
	require.NoError(t, res.err)

	_, err := os.Stat(export)
	require.NoError(t, err)
	entries, err := os.ReadDir(img)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestAnalyzeRemote_ErrorsKeepCodes(t *testing.T) {
	url := startServer(t)

	res := runCLI(t, "", "analyze", "--server", url, "--data", "smiles,score\nC,1\n")
	require.Error(t, res.err)
	assert.Equal(t, errors.CodeSchema, errors.GetCode(res.err))

	res = runCLI(t, "", "analyze", "--server", url)
	require.Error(t, res.err)
	assert.Equal(t, ExitUnready, ExitCode(res.err))

	res = runCLI(t, "", "analyze", "--server", url, "--example", "--publish")
	require.Error(t, res.err)
	assert.Equal(t, errors.CodeInvalidParam, errors.GetCode(res.err))
}

func TestFromAPIError(t *testing.T) {
	err := fromAPIError(&client.APIError{StatusCode: 422, Code: string(errors.CodeUnreadyInput), Message: "upload first"})
	assert.True(t, errors.IsUnready(err))

	plain := &client.APIError{StatusCode: 502, Message: "bad gateway"}
	assert.Same(t, plain, fromAPIError(plain))
}

//Personal.AI order the ending
