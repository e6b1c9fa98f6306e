package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/danieljhkim/depmode/internal/engine"
	"github.com/danieljhkim/depmode/internal/fsops"
)

// newEngine creates a new engine with real implementations of all
// dependencies. The runner and configuration are resolved per operation
// from the located workspace.
func newEngine() *engine.Engine {
	return engine.New(fsops.NewRealFS(), nil, nil)
}

// workingDir returns the directory operations start from.
func workingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderError prints a fatal error, expanding engine diagnostics into an
// error block with suggestions. In JSON mode the error is emitted as a
// JSON object instead.
func renderError(err error) {
	var diag *engine.Diagnostic
	if errors.As(err, &diag) {
		if jsonOutput {
			_ = outputJSON(map[string]interface{}{
				"error":       diag.Summary,
				"context":     diag.Context,
				"suggestions": diag.Suggestions,
			})
			return
		}
		PrintError(diag.Summary)
		if diag.Context != "" {
			PrintDim("Context: " + diag.Context)
		}
		if len(diag.Suggestions) > 0 {
			PrintDim("Suggestions:")
			PrintList(diag.Suggestions, 1)
		}
		return
	}

	if jsonOutput {
		_ = outputJSON(map[string]interface{}{"error": err.Error()})
		return
	}
	PrintError(err.Error())
}

// printWarnings prints scan warnings collected by an operation.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		PrintWarning(w)
	}
}
