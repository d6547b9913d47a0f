package utils

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	headerkit "github.com/webfold/headerkit"
)

// GetThreadsFlag extracts the threads flag value from a cobra command
// Cobra already validates that it's a valid integer, but we still check for errors
func GetThreadsFlag(cmd *cobra.Command) int {
	threads, err := cmd.Flags().GetInt("threads")
	if err != nil {
		// This should never happen if the flag is properly defined, so it's a programming error
		slog.Error("failed to get threads flag - this indicates a programming error", "err", err.Error())
		os.Exit(1)
	}
	return threads
}

// OpenHeaderFile opens a header block file, plain or gzipped, and returns a
// reader and the file handle
func OpenHeaderFile(filepath string) (*headerkit.Reader, *os.File, error) {
	f, err := os.Open(filepath)
	if err != nil {
		slog.Error("unable to open file", "err", err.Error(), "file", filepath)
		return nil, nil, err
	}

	reader, err := headerkit.NewReader(f, nil)
	if err != nil {
		slog.Error("headerkit.NewReader failed", "err", err.Error(), "file", filepath)
		f.Close()
		return nil, nil, err
	}

	return reader, f, nil
}
