package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ledger/internal/core"
	"ledger/internal/export"
)

// StdoutTarget selects standard output instead of a file.
const StdoutTarget = "-"

// WriteExport writes the ledger as CSV to target, a file path or
// StdoutTarget. A file is written next to its final name and renamed into
// place, so an empty ledger or a failed write leaves any previous export
// untouched.
func WriteExport(ledger []core.Expense, target string, stdout io.Writer) error {
	if target == StdoutTarget {
		return export.WriteCSV(stdout, ledger)
	}

	text, err := export.ToCSV(ledger)
	if err != nil {
		return err
	}

	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.WriteString(tmp, text); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}
	return nil
}
