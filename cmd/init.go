package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizkit/quizlint/internal/scaffolding"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a new corpus skeleton",
	Long: `Create the directory layout and contribution templates for a new
interview-question corpus:

- questions/ and answers/ with a directory per level
- examples/snippets/ and examples/rails/
- README, CONTRIBUTING, issue and pull-request templates
- A starter .quizlint.yml

Existing files are never overwritten.

Examples:
  quizlint init                   # Scaffold into the current directory
  quizlint init ruby-interviews   # Scaffold into a new directory
  quizlint init --example         # Also create a starter topic pair`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initWithExample bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initWithExample, "example", false, "Also generate a starter question/answer pair")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	generator := scaffolding.NewCorpusGenerator()
	if err := generator.Generate(scaffolding.GenerateOptions{
		Dir:              dir,
		WithExampleTopic: initWithExample,
	}); err != nil {
		return fmt.Errorf("scaffolding corpus: %w", err)
	}

	fmt.Printf("Corpus skeleton created in %s\n", dir)
	fmt.Println("Next steps:")
	fmt.Println("  1. Add a topic under questions/<level>/ and its answers file")
	fmt.Println("  2. Run 'quizlint check-all'")
	return nil
}
