package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/quizkit/quizlint/cmd"
	qerr "github.com/quizkit/quizlint/internal/errors"
)

func main() {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, cmd.ErrViolationsFound) {
		var usageErr *qerr.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, usageErr.Error())
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(cmd.ExitCode(err))
}
