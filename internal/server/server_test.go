package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizkit/quizlint/internal/config"
	qerr "github.com/quizkit/quizlint/internal/errors"
	"github.com/quizkit/quizlint/internal/logging"
	"github.com/quizkit/quizlint/internal/report"
)

func newTestServer(t *testing.T) *ReportServer {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: 8791},
	}
	logger := quietLogger()
	return NewReportServer(cfg, logger)
}

// quietLogger returns a logger that discards all output.
func quietLogger() logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{Level: logging.LevelError, Format: "text", Output: io.Discard})
}

func TestHandleIndexClean(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handleIndex(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "no violations found")
}

func TestHandleIndexWithViolations(t *testing.T) {
	s := newTestServer(t)
	s.UpdateReport(report.New([]qerr.Violation{
		{Checker: qerr.CheckerSchema, File: "questions/beginner/a.md", Reason: "heading missing", Kind: qerr.KindContent},
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handleIndex(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "questions/beginner/a.md")
	assert.Contains(t, body, "heading missing")
	assert.Contains(t, body, "1 violation found")
}

func TestHandleIndexNotFound(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/other", nil)
	rec := httptest.NewRecorder()
	s.handleIndex(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleReportJSON(t *testing.T) {
	s := newTestServer(t)
	s.UpdateReport(report.New([]qerr.Violation{
		{Checker: qerr.CheckerPairing, File: "answers/beginner/a.md", Item: 2, Reason: "unanswered prompt 2 in topic a, level beginner", Kind: qerr.KindContent},
	}))

	req := httptest.NewRequest(http.MethodGet, "/report.json", nil)
	rec := httptest.NewRecorder()
	s.handleReportJSON(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var records []report.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "answers/beginner/a.md", records[0].File)
	assert.Equal(t, 2, records[0].Item)
}

func TestUpdateReportSwapsCurrent(t *testing.T) {
	s := newTestServer(t)
	assert.False(t, s.Report().HasViolations())

	s.UpdateReport(report.New([]qerr.Violation{
		{Checker: qerr.CheckerSchema, File: "a.md", Reason: "heading missing"},
	}))

	assert.True(t, s.Report().HasViolations())
	assert.Equal(t, 1, s.Report().Count())
}

func TestAddr(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, "localhost:8791", s.Addr())
}

func TestCheckOrigin(t *testing.T) {
	s := newTestServer(t)

	testCases := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"own host", "http://localhost:8791", true},
		{"loopback ip", "http://127.0.0.1:8791", true},
		{"https own host", "https://localhost:8791", true},
		{"missing origin", "", false},
		{"other host", "http://evil.example.com", false},
		{"wrong port", "http://localhost:9999", false},
		{"non-http scheme", "file://localhost:8791", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			assert.Equal(t, tc.allowed, s.checkOrigin(req))
		})
	}
}
