package merge

import (
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/crypto/blake2b"

	"github.com/fediasonin/geomerge/internal/model"
)

// writeReport writes the rows to path and returns the hex BLAKE2b-256
// digest of the file contents. The report is written to a temp file in
// the destination directory and renamed into place, so a failed run
// never leaves a partial output file.
func writeReport(path string, rows []model.OutputRow, decimal bool) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating temp output: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	hash, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("initializing digest: %w", err)
	}

	w := csv.NewWriter(io.MultiWriter(tmp, hash))
	if err := w.Write(header(decimal)); err != nil {
		return "", fmt.Errorf("writing output header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(record(row, decimal)); err != nil {
			return "", fmt.Errorf("writing output row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("writing output: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("moving output into place: %w", err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func header(decimal bool) []string {
	if decimal {
		return []string{"_last_changed", "network", "start_ip", "end_ip", "from", "to", "code", "name"}
	}
	return []string{"_last_changed", "network", "start_ip", "end_ip", "code", "name"}
}

func record(row model.OutputRow, decimal bool) []string {
	if decimal {
		return []string{
			row.LastChanged, row.Network, row.StartIP, row.EndIP,
			strconv.FormatUint(uint64(row.From), 10),
			strconv.FormatUint(uint64(row.To), 10),
			row.Code, row.Name,
		}
	}
	return []string{row.LastChanged, row.Network, row.StartIP, row.EndIP, row.Code, row.Name}
}
