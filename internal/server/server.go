// Package server implements serve mode: a local HTTP server that renders
// the current violation report and pushes live-reload notifications over a
// websocket whenever the corpus changes on disk.
package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/quizkit/quizlint/internal/config"
	"github.com/quizkit/quizlint/internal/logging"
	"github.com/quizkit/quizlint/internal/report"
)

// ReportServer serves the live violation report.
type ReportServer struct {
	config *config.Config
	logger logging.Logger

	mutex   sync.RWMutex
	current *report.Report

	register   chan *client
	unregister chan *client
	broadcast  chan []byte

	httpServer *http.Server
}

// NewReportServer creates a report server for the configured listen address.
func NewReportServer(cfg *config.Config, logger logging.Logger) *ReportServer {
	s := &ReportServer{
		config:     cfg,
		logger:     logger.WithComponent("server"),
		current:    report.New(nil),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 16),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/report.json", s.handleReportJSON)
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Addr returns the listen address.
func (s *ReportServer) Addr() string {
	return s.httpServer.Addr
}

// Start runs the websocket hub and the HTTP listener until ctx is canceled.
func (s *ReportServer) Start(ctx context.Context) error {
	go s.runHub(ctx)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// UpdateReport swaps in a fresh report and notifies connected clients.
func (s *ReportServer) UpdateReport(rep *report.Report) {
	s.mutex.Lock()
	s.current = rep
	s.mutex.Unlock()

	select {
	case s.broadcast <- []byte("reload"):
	default:
		// Hub busy, clients will catch the next update
	}
}

// Report returns the report currently being served.
func (s *ReportServer) Report() *report.Report {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.current
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>quizlint report</title>
<style>
body { font-family: monospace; margin: 2em; }
h1 { font-size: 1.2em; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
.summary { margin-top: 1em; font-weight: bold; }
.clean { color: #2a7a2a; }
.dirty { color: #a33; }
</style>
</head>
<body>
<h1>quizlint report</h1>
{{if .Records}}
<table>
<tr><th>File</th><th>Item</th><th>Reason</th><th>Checker</th><th>Kind</th></tr>
{{range .Records}}
<tr><td>{{.File}}</td><td>{{if .Item}}{{.Item}}{{end}}</td><td>{{.Reason}}</td><td>{{.Checker}}</td><td>{{.Kind}}</td></tr>
{{end}}
</table>
<p class="summary dirty">{{.Summary}}</p>
{{else}}
<p class="summary clean">{{.Summary}}</p>
{{end}}
<script>
(function connect() {
	var ws = new WebSocket("ws://" + location.host + "/ws");
	ws.onmessage = function() { location.reload(); };
	ws.onclose = function() { setTimeout(connect, 1000); };
})();
</script>
</body>
</html>`))

func (s *ReportServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	rep := s.Report()
	data := struct {
		Records []report.Record
		Summary string
	}{
		Records: rep.Records(),
		Summary: rep.Summary(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error(r.Context(), err, "rendering report page")
	}
}

func (s *ReportServer) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.Report().WriteJSON(w); err != nil {
		s.logger.Error(r.Context(), err, "writing report json")
	}
}
