package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fortuna/fieldhouse/internal/records"
)

// writeJSON pretty-prints any value to stdout.
func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeTable emits one table as CSV, to stdout or to a file under --out.
func writeTable(t records.Table, name string) error {
	if flagOut == "" {
		return t.WriteCSV(os.Stdout)
	}

	if err := os.MkdirAll(flagOut, 0o755); err != nil {
		return err
	}
	path := filepath.Join(flagOut, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := t.WriteCSV(f); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}

// writeDataset emits a scraped dataset: one JSON document, or one CSV per
// table with --csv.
func writeDataset(ds records.Dataset, prefix string) error {
	if !flagCSV {
		return writeJSON(ds)
	}

	if len(ds.Info) > 0 {
		if err := writeTable(records.GameInfoTable(ds.Info), prefix+"_info"); err != nil {
			return err
		}
	}
	if len(ds.Box) > 0 {
		if err := writeTable(records.BoxscoreTable(ds.Box), prefix+"_box"); err != nil {
			return err
		}
	}
	if len(ds.PBP) > 0 {
		if err := writeTable(records.PlayEventTable(ds.PBP), prefix+"_pbp"); err != nil {
			return err
		}
	}
	return nil
}
