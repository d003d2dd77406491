package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func newTestLogger(t *testing.T) (Logger, *zaptest.Buffer) {
	t.Helper()
	buf := &zaptest.Buffer{}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), buf, zapcore.DebugLevel)
	return &zapLogger{z: zap.New(core), level: zap.NewAtomicLevelAt(zapcore.DebugLevel)}, buf
}

func decodeLine(t *testing.T, line string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &m))
	return m
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(LogConfig{Level: LevelInfo, Format: format, OutputPaths: []string{"stdout"}})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}
}

func TestNewLogger_ConsoleStacktraceOnlyFromError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	l, err := NewLogger(LogConfig{Level: LevelDebug, Format: "console", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.Warn("structure interpretation failed", String("smiles", "C1CC"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 1, string(data))
	assert.Contains(t, lines[0], "structure interpretation failed")

	l.Error("pipeline failed")
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Greater(t, len(lines), 2, "error entries carry a stack trace")
}

func TestNewLogger_EmptyOutputPaths(t *testing.T) {
	l, err := NewLogger(LogConfig{OutputPaths: []string{}})
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestNewLogger_NilOutputPathsDefaultsToStdout(t *testing.T) {
	l, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestZapLogger_TypedFields(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Info("run finished",
		String("run_id", "r1"),
		Int("total", 6),
		Int64("bytes", 42),
		Float64("ratio", 0.5),
		Bool("ok", true),
		Duration("elapsed", 2*time.Second),
		Err(errors.New("boom")),
	)

	lines := buf.Lines()
	require.Len(t, lines, 1)
	m := decodeLine(t, lines[0])
	assert.Equal(t, "run finished", m["msg"])
	assert.Equal(t, "r1", m["run_id"])
	assert.Equal(t, float64(6), m["total"])
	assert.Equal(t, true, m["ok"])
	assert.Equal(t, "boom", m["error"])
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	l, buf := newTestLogger(t)

	child := l.Named("pipeline").With(String("run_id", "abc"))
	child.Warn("record failed")

	m := decodeLine(t, buf.Lines()[0])
	assert.Equal(t, "pipeline", m["logger"])
	assert.Equal(t, "abc", m["run_id"])
	assert.Equal(t, "warn", m["level"])
}

func TestErr_Nil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestNewWriterLogger_LevelCanChange(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelWarn, "json")

	l.Info("hidden")
	assert.Empty(t, buf.String())

	setter, ok := l.(LevelSetter)
	require.True(t, ok)
	setter.SetLevel(LevelDebug)

	l.Info("shown")
	assert.True(t, strings.Contains(buf.String(), "shown"))
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Debug("msg")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	l.Fatal("msg")
	assert.Equal(t, l, l.With(String("k", "v")))
	assert.Equal(t, l, l.Named("x"))
}

func TestDefault_SetAndGet(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	l, _ := newTestLogger(t)
	SetDefault(l)
	assert.Equal(t, l, Default())

	SetDefault(nil)
	assert.Equal(t, l, Default(), "nil must be ignored")
}

//Personal.AI order the ending
