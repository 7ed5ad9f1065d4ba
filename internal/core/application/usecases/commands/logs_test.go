package commands_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func jsonLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

// levelCount returns how many records in buf were written at level.
func levelCount(t *testing.T, buf *bytes.Buffer, level slog.Level) int {
	t.Helper()
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		if rec[slog.LevelKey] == level.String() {
			n++
		}
	}
	require.NoError(t, sc.Err())
	return n
}
