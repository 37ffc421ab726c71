// Package scaffolding generates a new corpus skeleton: the level
// directories under questions/ and answers/, the examples split, the
// contribution templates, and a starter config file.
package scaffolding

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/quizkit/quizlint/internal/corpus"
)

// GenerateOptions holds options for corpus generation
type GenerateOptions struct {
	// Dir is the root directory of the new corpus
	Dir string
	// ProjectName appears in the generated README and templates
	ProjectName string
	// WithExampleTopic also generates a starter question/answer pair
	WithExampleTopic bool
}

// CorpusGenerator scaffolds new corpora from the built-in templates.
type CorpusGenerator struct {
	titleCaser cases.Caser
}

// NewCorpusGenerator creates a new corpus generator
func NewCorpusGenerator() *CorpusGenerator {
	return &CorpusGenerator{
		titleCaser: cases.Title(language.English),
	}
}

// templateContext is the data handed to every scaffold template.
type templateContext struct {
	ProjectName string
	Date        string
	Levels      []corpus.Level
}

// Generate creates the corpus skeleton. Existing files are never
// overwritten; the generator reports the first conflict and stops.
func (g *CorpusGenerator) Generate(opts GenerateOptions) error {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.ProjectName == "" {
		opts.ProjectName = filepath.Base(absOrSelf(opts.Dir))
	}

	ctx := templateContext{
		ProjectName: g.titleCaser.String(opts.ProjectName),
		Date:        time.Now().Format("2006-01-02"),
		Levels:      corpus.Levels(),
	}

	for _, level := range corpus.Levels() {
		for _, root := range []string{"questions", "answers"} {
			dir := filepath.Join(opts.Dir, root, string(level))
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
		}
	}
	for _, sub := range []string{"snippets", "rails"} {
		dir := filepath.Join(opts.Dir, "examples", sub)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	templateDir := filepath.Join(opts.Dir, ".github", "ISSUE_TEMPLATE")
	if err := os.MkdirAll(templateDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", templateDir, err)
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(opts.Dir, "README.md"), readmeTemplate},
		{filepath.Join(opts.Dir, ".quizlint.yml"), configTemplate},
		{filepath.Join(opts.Dir, "CONTRIBUTING.md"), contributingTemplate},
		{filepath.Join(templateDir, "new_question.md"), questionIssueTemplate},
		{filepath.Join(opts.Dir, ".github", "PULL_REQUEST_TEMPLATE.md"), pullRequestTemplate},
	}
	if opts.WithExampleTopic {
		files = append(files,
			struct {
				path    string
				content string
			}{filepath.Join(opts.Dir, "questions", "beginner", "getting_started.md"), starterQuestionTemplate},
			struct {
				path    string
				content string
			}{filepath.Join(opts.Dir, "answers", "beginner", "getting_started.md"), starterAnswerTemplate},
		)
	}

	for _, file := range files {
		if err := g.generateFile(file.path, file.content, ctx); err != nil {
			return err
		}
	}

	return nil
}

// generateFile renders one template to disk, refusing to overwrite.
func (g *CorpusGenerator) generateFile(path, content string, ctx templateContext) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing file: %s", path)
	}

	tmpl, err := template.New(filepath.Base(path)).Parse(content)
	if err != nil {
		return fmt.Errorf("parsing template for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, ctx); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}

func absOrSelf(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
