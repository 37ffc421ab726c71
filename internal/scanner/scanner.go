// Package scanner provides corpus discovery and parsing. It traverses the
// question, answer, and examples roots, parses Markdown documents into their
// structural shape, and registers everything in the corpus registry.
//
// Each file's analysis is independent, so files are processed concurrently
// by a persistent worker pool. Per-file read failures are converted to
// io-error violations and never abort the scan; cancellation through the
// context stops scheduling unscanned files and leaves already-computed
// results valid.
package scanner

import (
	"context"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	qerr "github.com/quizkit/quizlint/internal/errors"

	"github.com/quizkit/quizlint/internal/corpus"
	"github.com/quizkit/quizlint/internal/markdown"
	"github.com/quizkit/quizlint/internal/registry"
)

// fileClass tells a worker how to interpret the file it was handed.
type fileClass int

const (
	classQuestion fileClass = iota
	classAnswer
	classScript
)

// ScanJob represents a scanning job for the worker pool.
type ScanJob struct {
	// path is the file to scan
	path string
	// class tells the worker which parser and registry slot to use
	class fileClass
	// key is the document key, valid for question and answer jobs
	key corpus.DocKey
	// category is the script category, valid for script jobs
	category corpus.ScriptCategory
	// result receives the outcome asynchronously
	result chan<- ScanResult
}

// ScanResult reports the outcome of scanning one file.
type ScanResult struct {
	path string
	err  error
}

// WorkerPool manages persistent scanning workers so repeated scans (watch
// mode) do not pay goroutine start-up costs per file.
type WorkerPool struct {
	jobQueue    chan ScanJob
	workers     []*scanWorker
	workerCount int
	scanner     *CorpusScanner
	stopped     bool
	mu          sync.Mutex
}

type scanWorker struct {
	id       int
	jobQueue <-chan ScanJob
	scanner  *CorpusScanner
	stop     chan struct{}
}

// CorpusScanner discovers and parses corpus files.
type CorpusScanner struct {
	registry  *registry.CorpusRegistry
	collector *qerr.Collector
	normalize corpus.NormalizeOptions
	pool      *WorkerPool
}

// NewCorpusScanner creates a scanner that registers parsed files into reg
// and reports io-error violations into collector.
func NewCorpusScanner(reg *registry.CorpusRegistry, collector *qerr.Collector, normalize corpus.NormalizeOptions) *CorpusScanner {
	s := &CorpusScanner{
		registry:  reg,
		collector: collector,
		normalize: normalize,
	}

	workerCount := runtime.NumCPU()
	if workerCount > 8 {
		workerCount = 8 // diminishing returns past this for text files
	}
	s.pool = newWorkerPool(workerCount, s)
	return s
}

func newWorkerPool(workerCount int, scanner *CorpusScanner) *WorkerPool {
	pool := &WorkerPool{
		jobQueue:    make(chan ScanJob, workerCount*2),
		workerCount: workerCount,
		scanner:     scanner,
	}

	pool.workers = make([]*scanWorker, workerCount)
	for i := 0; i < workerCount; i++ {
		worker := &scanWorker{
			id:       i,
			jobQueue: pool.jobQueue,
			scanner:  scanner,
			stop:     make(chan struct{}),
		}
		pool.workers[i] = worker
		go worker.start()
	}
	return pool
}

func (w *scanWorker) start() {
	for {
		select {
		case job, ok := <-w.jobQueue:
			if !ok {
				return
			}
			err := w.scanner.scanFile(job)
			job.result <- ScanResult{path: job.path, err: err}
		case <-w.stop:
			return
		}
	}
}

// Stop gracefully shuts down the worker pool.
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	for _, worker := range p.workers {
		close(worker.stop)
	}
	close(p.jobQueue)
}

// Registry returns the corpus registry the scanner feeds.
func (s *CorpusScanner) Registry() *registry.CorpusRegistry {
	return s.registry
}

// Close shuts down the scanner's worker pool.
func (s *CorpusScanner) Close() error {
	if s.pool != nil {
		s.pool.Stop()
	}
	return nil
}

// ScanQuestions scans a question root laid out as <root>/<level>/<topic>.md.
func (s *CorpusScanner) ScanQuestions(ctx context.Context, root string) error {
	return s.scanDocRoot(ctx, root, classQuestion)
}

// ScanAnswers scans an answer root with the same layout as the questions.
func (s *CorpusScanner) ScanAnswers(ctx context.Context, root string) error {
	return s.scanDocRoot(ctx, root, classAnswer)
}

// ScanExamples scans an examples root split into snippets/ and rails/
// subtrees. Files outside the two subtrees are ignored.
func (s *CorpusScanner) ScanExamples(ctx context.Context, root string) error {
	cleanRoot, err := validateRoot(root)
	if err != nil {
		return err
	}

	var jobs []ScanJob
	walkErr := filepath.WalkDir(cleanRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			s.collector.Add(qerr.NewIOViolation(qerr.CheckerExamples, path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, relErr := filepath.Rel(cleanRoot, path)
		if relErr != nil {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) < 2 {
			return nil
		}

		var category corpus.ScriptCategory
		switch parts[0] {
		case "snippets":
			category = corpus.CategorySnippet
		case "rails":
			category = corpus.CategoryFramework
		default:
			return nil
		}

		jobs = append(jobs, ScanJob{path: path, class: classScript, category: category})
		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	return s.processBatch(ctx, jobs)
}

// scanDocRoot walks one of the two document roots and schedules every
// markdown file it finds.
func (s *CorpusScanner) scanDocRoot(ctx context.Context, root string, class fileClass) error {
	cleanRoot, err := validateRoot(root)
	if err != nil {
		return err
	}

	checker := qerr.CheckerSchema

	// Stems that normalize to the same key would overwrite each other in the
	// registry; the walk is lexical, so the first spelling deterministically
	// wins and later ones are reported instead of scheduled.
	seen := make(map[corpus.DocKey]string)

	var jobs []ScanJob
	walkErr := filepath.WalkDir(cleanRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			s.collector.Add(qerr.NewIOViolation(checker, path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		rel, relErr := filepath.Rel(cleanRoot, path)
		if relErr != nil {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 2 {
			s.collector.Add(qerr.Violation{
				Checker:  checker,
				File:     path,
				Reason:   "file outside <level>/<topic>.md layout",
				Kind:     qerr.KindContent,
				Severity: qerr.SeverityWarning,
			})
			return nil
		}

		level, ok := corpus.ParseLevel(parts[0])
		if !ok {
			s.collector.Add(qerr.Violation{
				Checker:  checker,
				File:     path,
				Reason:   fmt.Sprintf("unknown level directory %q", parts[0]),
				Kind:     qerr.KindContent,
				Severity: qerr.SeverityError,
			})
			return nil
		}

		stem := strings.TrimSuffix(parts[1], filepath.Ext(parts[1]))
		key := corpus.DocKey{Level: level, Topic: s.normalize.Topic(stem)}

		if first, dup := seen[key]; dup {
			s.collector.Add(qerr.Violation{
				Checker:  checker,
				File:     path,
				Reason:   fmt.Sprintf("duplicate topic %s: conflicts with %s", key, first),
				Kind:     qerr.KindContent,
				Severity: qerr.SeverityError,
			})
			return nil
		}
		seen[key] = path

		jobs = append(jobs, ScanJob{path: path, class: class, key: key})
		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	return s.processBatch(ctx, jobs)
}

// processBatch runs jobs through the worker pool and waits for all results:
// the join point before any result ordering happens downstream. A canceled
// context stops submission; results for already-submitted jobs are still
// collected so partial output remains valid.
func (s *CorpusScanner) processBatch(ctx context.Context, jobs []ScanJob) error {
	if len(jobs) == 0 {
		return nil
	}

	// Small batches are cheaper to run synchronously than to schedule.
	if len(jobs) <= 5 {
		for _, job := range jobs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.scanFile(job); err != nil {
				s.recordScanFailure(job, err)
			}
		}
		return nil
	}

	resultChan := make(chan ScanResult, len(jobs))
	submitted := 0

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		job.result = resultChan

		select {
		case s.pool.jobQueue <- job:
			submitted++
		default:
			// Pool saturated, do the work on the calling goroutine
			err := s.scanFile(job)
			resultChan <- ScanResult{path: job.path, err: err}
			submitted++
		}
	}

	for i := 0; i < submitted; i++ {
		result := <-resultChan
		if result.err != nil {
			for _, job := range jobs {
				if job.path == result.path {
					s.recordScanFailure(job, result.err)
					break
				}
			}
		}
	}

	return ctx.Err()
}

func (s *CorpusScanner) recordScanFailure(job ScanJob, err error) {
	checker := qerr.CheckerSchema
	if job.class == classScript {
		checker = qerr.CheckerExamples
	}
	s.collector.Add(qerr.NewIOViolation(checker, job.path, err))
}

// scanFile reads, hashes, and parses a single file, then registers it.
func (s *CorpusScanner) scanFile(job ScanJob) error {
	file, err := os.Open(job.path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("getting file info: %w", err)
	}

	content := make([]byte, info.Size())
	if _, err := io.ReadFull(file, content); err != nil && info.Size() > 0 {
		return fmt.Errorf("reading file: %w", err)
	}

	hash := fmt.Sprintf("%x", crc32.ChecksumIEEE(content))

	if job.class == classScript {
		s.registry.RegisterScript(&corpus.ExampleScript{
			FilePath: job.path,
			Category: job.category,
			Content:  string(content),
			Hash:     hash,
			LastMod:  info.ModTime(),
		})
		return nil
	}

	parsed := markdown.Parse(content)

	kind := corpus.KindQuestion
	if job.class == classAnswer {
		kind = corpus.KindAnswer
	}

	prompts := make([]corpus.Prompt, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		prompts = append(prompts, corpus.Prompt{
			Number:  item.Number,
			Title:   item.Title,
			Body:    item.Body,
			HasCode: item.HasCode,
		})
	}

	s.registry.RegisterDocument(&corpus.Document{
		Kind:     kind,
		Key:      job.key,
		FilePath: job.path,
		Heading:  parsed.Heading,
		Prompts:  prompts,
		Hash:     hash,
		LastMod:  info.ModTime(),
	})
	return nil
}

// validateRoot cleans a root path and rejects traversal patterns. Roots are
// validated eagerly so bad CLI arguments surface before any scanning.
func validateRoot(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("empty root path")
	}
	cleanRoot := filepath.Clean(root)
	if strings.Contains(cleanRoot, "..") {
		return "", fmt.Errorf("root path contains traversal: %s", root)
	}
	info, err := os.Stat(cleanRoot)
	if err != nil {
		return "", fmt.Errorf("root path %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root path %s is not a directory", root)
	}
	return cleanRoot, nil
}
