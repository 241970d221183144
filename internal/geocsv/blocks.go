package geocsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/fediasonin/geomerge/internal/model"
)

// geonameColumns are the location key candidates of a GeoLite2-style
// blocks table, in lookup order.
var geonameColumns = []string{
	"geoname_id",
	"registered_country_geoname_id",
	"represented_country_geoname_id",
}

// LoadBlocks reads the blocks table from path, preserving row order.
func LoadBlocks(path string) ([]model.BlockRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening blocks file: %w", err)
	}
	defer f.Close()

	blocks, err := ReadBlocks(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return blocks, nil
}

// ReadBlocks parses a blocks table. A network column is always
// required. A geoname_id column selects GeoLite2 keying with the
// registered/represented fallback chain; otherwise a code column is
// required.
func ReadBlocks(r io.Reader) ([]model.BlockRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading blocks header: %w", err)
	}
	cols := columnIndex(header)

	netIdx, ok := cols["network"]
	if !ok {
		return nil, fmt.Errorf("blocks table: %w: need a network column", ErrMissingColumn)
	}

	var geoIdx []int
	codeIdx := -1
	if _, geolite := cols["geoname_id"]; geolite {
		for _, name := range geonameColumns {
			if idx, ok := cols[name]; ok {
				geoIdx = append(geoIdx, idx)
			}
		}
	} else {
		codeIdx, ok = firstOf(cols, "code", "country_code", "country_iso_code")
		if !ok {
			return nil, fmt.Errorf("blocks table: %w: need a code column (or geoname_id)", ErrMissingColumn)
		}
	}

	var blocks []model.BlockRecord
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading blocks table: %w", err)
		}

		block := model.BlockRecord{Network: field(record, netIdx)}
		if codeIdx >= 0 {
			block.Code = field(record, codeIdx)
		} else {
			for _, idx := range geoIdx {
				block.GeonameIDs = append(block.GeonameIDs, field(record, idx))
			}
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}
