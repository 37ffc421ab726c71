// Package registry holds the in-memory view of a scanned corpus: question
// and answer documents keyed by (level, topic) and the example scripts found
// under the examples tree. The registry broadcasts change events to
// subscribers, which is how watch and serve mode learn that a re-check is
// due.
package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/quizkit/quizlint/internal/corpus"
)

// EventType represents the type of registry event
type EventType int

const (
	EventTypeAdded EventType = iota
	EventTypeUpdated
	EventTypeRemoved
)

// String returns the string representation of the event type
func (e EventType) String() string {
	switch e {
	case EventTypeAdded:
		return "added"
	case EventTypeUpdated:
		return "updated"
	case EventTypeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event represents a change in the corpus registry.
type Event struct {
	Type EventType
	// Path is the file the event refers to
	Path      string
	Timestamp time.Time
}

// CorpusRegistry manages all discovered documents and example scripts.
type CorpusRegistry struct {
	questions map[corpus.DocKey]*corpus.Document
	answers   map[corpus.DocKey]*corpus.Document
	scripts   map[string]*corpus.ExampleScript
	mutex     sync.RWMutex
	watchers  []chan Event
}

// NewCorpusRegistry creates a new empty corpus registry
func NewCorpusRegistry() *CorpusRegistry {
	return &CorpusRegistry{
		questions: make(map[corpus.DocKey]*corpus.Document),
		answers:   make(map[corpus.DocKey]*corpus.Document),
		scripts:   make(map[string]*corpus.ExampleScript),
		watchers:  make([]chan Event, 0),
	}
}

// RegisterDocument adds or updates a question or answer document.
func (r *CorpusRegistry) RegisterDocument(doc *corpus.Document) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	target := r.questions
	if doc.Kind == corpus.KindAnswer {
		target = r.answers
	}

	eventType := EventTypeAdded
	if existing, exists := target[doc.Key]; exists {
		if existing.Hash == doc.Hash {
			// Unchanged content, no event
			target[doc.Key] = doc
			return
		}
		eventType = EventTypeUpdated
	}
	target[doc.Key] = doc

	r.notify(Event{Type: eventType, Path: doc.FilePath, Timestamp: time.Now()})
}

// RegisterScript adds or updates an example script.
func (r *CorpusRegistry) RegisterScript(script *corpus.ExampleScript) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	eventType := EventTypeAdded
	if existing, exists := r.scripts[script.FilePath]; exists {
		if existing.Hash == script.Hash {
			r.scripts[script.FilePath] = script
			return
		}
		eventType = EventTypeUpdated
	}
	r.scripts[script.FilePath] = script

	r.notify(Event{Type: eventType, Path: script.FilePath, Timestamp: time.Now()})
}

// Question retrieves a question document by key.
func (r *CorpusRegistry) Question(key corpus.DocKey) (*corpus.Document, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	doc, exists := r.questions[key]
	return doc, exists
}

// Answer retrieves an answer document by key.
func (r *CorpusRegistry) Answer(key corpus.DocKey) (*corpus.Document, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	doc, exists := r.answers[key]
	return doc, exists
}

// Questions returns a snapshot of all question documents.
func (r *CorpusRegistry) Questions() map[corpus.DocKey]*corpus.Document {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	result := make(map[corpus.DocKey]*corpus.Document, len(r.questions))
	for key, doc := range r.questions {
		result[key] = doc
	}
	return result
}

// Answers returns a snapshot of all answer documents.
func (r *CorpusRegistry) Answers() map[corpus.DocKey]*corpus.Document {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	result := make(map[corpus.DocKey]*corpus.Document, len(r.answers))
	for key, doc := range r.answers {
		result[key] = doc
	}
	return result
}

// Documents returns all documents of both kinds sorted by file path. The
// ordering makes downstream reports stable across runs.
func (r *CorpusRegistry) Documents() []*corpus.Document {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	docs := make([]*corpus.Document, 0, len(r.questions)+len(r.answers))
	for _, doc := range r.questions {
		docs = append(docs, doc)
	}
	for _, doc := range r.answers {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})
	return docs
}

// Scripts returns all example scripts sorted by file path.
func (r *CorpusRegistry) Scripts() []*corpus.ExampleScript {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	scripts := make([]*corpus.ExampleScript, 0, len(r.scripts))
	for _, script := range r.scripts {
		scripts = append(scripts, script)
	}
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].FilePath < scripts[j].FilePath
	})
	return scripts
}

// RemovePath removes whichever document or script was loaded from the path.
func (r *CorpusRegistry) RemovePath(path string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := false
	for key, doc := range r.questions {
		if doc.FilePath == path {
			delete(r.questions, key)
			removed = true
		}
	}
	for key, doc := range r.answers {
		if doc.FilePath == path {
			delete(r.answers, key)
			removed = true
		}
	}
	if _, exists := r.scripts[path]; exists {
		delete(r.scripts, path)
		removed = true
	}

	if removed {
		r.notify(Event{Type: EventTypeRemoved, Path: path, Timestamp: time.Now()})
	}
}

// Clear drops all registered documents and scripts. Watch mode uses this
// before a full rescan so deleted files do not linger.
func (r *CorpusRegistry) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.questions = make(map[corpus.DocKey]*corpus.Document)
	r.answers = make(map[corpus.DocKey]*corpus.Document)
	r.scripts = make(map[string]*corpus.ExampleScript)
}

// Count returns the number of registered documents and scripts.
func (r *CorpusRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.questions) + len(r.answers) + len(r.scripts)
}

// Watch returns a channel that receives registry events.
func (r *CorpusRegistry) Watch() <-chan Event {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	ch := make(chan Event, 100)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it.
func (r *CorpusRegistry) UnWatch(ch <-chan Event) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// notify must be called with the mutex held.
func (r *CorpusRegistry) notify(event Event) {
	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}
