package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/quizkit/quizlint/internal/config"
	"github.com/quizkit/quizlint/internal/corpus"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose corpus layout and configuration issues",
	Long: `Diagnose the corpus setup and report anything that would prevent the
checks from running usefully:

- Root directories present and readable
- Level directories recognized
- Configuration loads and validates
- Denylist and normalization settings in effect

Examples:
  quizlint doctor                   # Full diagnosis
  quizlint doctor --format json     # Output as JSON for tooling
  quizlint doctor --format yaml     # Output as YAML`,
	RunE: runDoctor,
}

var doctorFormat string

// DiagnosticResult represents the result of a diagnostic check
type DiagnosticResult struct {
	Name       string `json:"name" yaml:"name"`
	Status     string `json:"status" yaml:"status"` // "ok", "warning", "error"
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// DoctorReport represents the complete diagnostic report
type DoctorReport struct {
	Timestamp time.Time          `json:"timestamp" yaml:"timestamp"`
	Results   []DiagnosticResult `json:"results" yaml:"results"`
	Summary   DoctorSummary      `json:"summary" yaml:"summary"`
}

// DoctorSummary provides an overview of diagnostic results
type DoctorSummary struct {
	Total    int `json:"total" yaml:"total"`
	OK       int `json:"ok" yaml:"ok"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Errors   int `json:"errors" yaml:"errors"`
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().StringVarP(&doctorFormat, "format", "f", "text", "Output format (text, json, yaml)")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	doctorReport := DoctorReport{Timestamp: time.Now()}

	cfg, err := config.Load()
	if err != nil {
		doctorReport.Results = append(doctorReport.Results, DiagnosticResult{
			Name:       "configuration",
			Status:     "error",
			Message:    err.Error(),
			Suggestion: "fix .quizlint.yml or QUIZLINT_* environment overrides",
		})
		return outputDoctor(doctorReport)
	}
	doctorReport.Results = append(doctorReport.Results, DiagnosticResult{
		Name:    "configuration",
		Status:  "ok",
		Message: "configuration loads and validates",
	})

	for _, root := range []struct {
		name string
		path string
	}{
		{"questions root", cfg.Roots.Questions},
		{"answers root", cfg.Roots.Answers},
		{"examples root", cfg.Roots.Examples},
	} {
		doctorReport.Results = append(doctorReport.Results, diagnoseRoot(root.name, root.path))
	}

	doctorReport.Results = append(doctorReport.Results, diagnoseLevels(cfg.Roots.Questions))
	doctorReport.Results = append(doctorReport.Results, diagnoseLevels(cfg.Roots.Answers))

	doctorReport.Results = append(doctorReport.Results, DiagnosticResult{
		Name:    "denylist",
		Status:  "ok",
		Message: fmt.Sprintf("%d framework vocabulary tokens configured", len(cfg.Examples.Denylist)),
	})

	normalize := cfg.NormalizeOptions()
	status := "ok"
	suggestion := ""
	if !normalize.Lowercase || !normalize.CollapseSeparators {
		status = "warning"
		suggestion = "relaxed normalization can report spurious orphans from naming drift"
	}
	doctorReport.Results = append(doctorReport.Results, DiagnosticResult{
		Name:   "normalization",
		Status: status,
		Message: fmt.Sprintf("lowercase=%t trim=%t collapse_separators=%t",
			normalize.Lowercase, normalize.Trim, normalize.CollapseSeparators),
		Suggestion: suggestion,
	})

	return outputDoctor(doctorReport)
}

func diagnoseRoot(name, path string) DiagnosticResult {
	info, err := os.Stat(path)
	if err != nil {
		return DiagnosticResult{
			Name:       name,
			Status:     "error",
			Message:    fmt.Sprintf("%s: %v", path, err),
			Suggestion: "create the directory or point the root flag/config at the right place",
		}
	}
	if !info.IsDir() {
		return DiagnosticResult{
			Name:    name,
			Status:  "error",
			Message: fmt.Sprintf("%s is not a directory", path),
		}
	}
	return DiagnosticResult{
		Name:    name,
		Status:  "ok",
		Message: path,
	}
}

// diagnoseLevels flags directories under a document root that are not
// recognized tiers; their files would be reported as violations by the
// schema scan.
func diagnoseLevels(root string) DiagnosticResult {
	name := fmt.Sprintf("levels under %s", root)

	entries, err := os.ReadDir(root)
	if err != nil {
		return DiagnosticResult{Name: name, Status: "warning", Message: err.Error()}
	}

	var unknown []string
	known := 0
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		if _, ok := corpus.ParseLevel(entry.Name()); ok {
			known++
		} else {
			unknown = append(unknown, entry.Name())
		}
	}

	if len(unknown) > 0 {
		return DiagnosticResult{
			Name:       name,
			Status:     "warning",
			Message:    fmt.Sprintf("unrecognized level directories: %v", unknown),
			Suggestion: fmt.Sprintf("known levels are %v", corpus.Levels()),
		}
	}
	return DiagnosticResult{
		Name:    name,
		Status:  "ok",
		Message: fmt.Sprintf("%d level directories recognized", known),
	}
}

func outputDoctor(doctorReport DoctorReport) error {
	for _, result := range doctorReport.Results {
		doctorReport.Summary.Total++
		switch result.Status {
		case "ok":
			doctorReport.Summary.OK++
		case "warning":
			doctorReport.Summary.Warnings++
		default:
			doctorReport.Summary.Errors++
		}
	}

	switch doctorFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doctorReport); err != nil {
			return err
		}
	case "yaml":
		data, err := yaml.Marshal(doctorReport)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	default:
		for _, result := range doctorReport.Results {
			marker := "✅"
			switch result.Status {
			case "warning":
				marker = "⚠️"
			case "error":
				marker = "❌"
			}
			fmt.Printf("%s %s: %s\n", marker, result.Name, result.Message)
			if result.Suggestion != "" {
				fmt.Printf("    Suggestion: %s\n", result.Suggestion)
			}
		}
		fmt.Printf("\n%d checks: %d ok, %d warnings, %d errors\n",
			doctorReport.Summary.Total, doctorReport.Summary.OK,
			doctorReport.Summary.Warnings, doctorReport.Summary.Errors)
	}

	if doctorReport.Summary.Errors > 0 {
		return fmt.Errorf("doctor found %d errors", doctorReport.Summary.Errors)
	}
	return nil
}
