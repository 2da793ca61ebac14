package services

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestStoreErrorsAreLoggedWithoutStack(t *testing.T) {
	logs := captureLogs(t)
	r := newRouter(&memStore{err: errors.Wrap(errStoreDown, "could not insert water entry")}, "u1")

	w := do(r, http.MethodPost, "/entries/water", `{"amountMl":250,"date":"2026-10-15"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	out := strings.TrimSpace(logs.String())
	assert.Contains(t, out, "could not insert water entry: store down")
	assert.NotContains(t, out, ".go:")
	assert.Equal(t, 1, strings.Count(logs.String(), "\n"))
}

func TestUnrecognizedDocumentsAreCounted(t *testing.T) {
	for _, path := range []string{
		"/entries?date=2026-10-15",
		"/entries/meals?date=2026-10-15",
		"/entries/water?date=2026-10-15",
		"/summary?date=2026-10-15",
	} {
		t.Run(path, func(t *testing.T) {
			logs := captureLogs(t)
			r := newRouter(seededStore(), "u1")

			w := do(r, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, w.Code)

			assert.Contains(t, logs.String(), "skipped unrecognized entries")
			assert.Contains(t, logs.String(), "received=5")
			assert.Contains(t, logs.String(), "dropped=2")
		})
	}
}

func TestUnrecognizedDocumentsSkippedAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	r := newRouter(seededStore(), "u1")
	w := do(r, http.MethodGet, "/entries/meals", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String())
}
