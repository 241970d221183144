// Package merge joins the locations and blocks tables into one
// denormalized snapshot report.
package merge

import (
	"fmt"

	"github.com/fediasonin/geomerge/internal/geocsv"
	"github.com/fediasonin/geomerge/internal/iprange"
	"github.com/fediasonin/geomerge/internal/log"
	"github.com/fediasonin/geomerge/internal/model"
)

// Options describes one merge run.
type Options struct {
	LocationsPath string
	BlocksPath    string
	OutputPath    string
	Stamp         string // already validated against StampLayout
	Decimal       bool   // emit numeric from/to columns
}

// Result summarizes a completed run.
type Result struct {
	Rows       int
	Unresolved int
	Digest     string // hex BLAKE2b-256 of the written report
}

// Run loads both tables, joins them, and writes the report. Any error
// before the final rename leaves no output file behind.
func Run(opts Options) (*Result, error) {
	locs, err := geocsv.LoadLocations(opts.LocationsPath)
	if err != nil {
		return nil, err
	}
	log.Debug("Locations loaded", "path", opts.LocationsPath, "entries", len(locs))

	blocks, err := geocsv.LoadBlocks(opts.BlocksPath)
	if err != nil {
		return nil, err
	}
	log.Debug("Blocks loaded", "path", opts.BlocksPath, "rows", len(blocks))

	rows, unresolved, err := Join(locs, blocks, opts.Stamp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.BlocksPath, err)
	}
	if unresolved > 0 {
		log.Warn("Blocks with no matching location", "count", unresolved)
	}

	digest, err := writeReport(opts.OutputPath, rows, opts.Decimal)
	if err != nil {
		return nil, err
	}

	log.Info("Snapshot written", "output", opts.OutputPath, "rows", len(rows), "unresolved", unresolved)
	return &Result{
		Rows:       len(rows),
		Unresolved: unresolved,
		Digest:     digest,
	}, nil
}

// Join produces one output row per block row, preserving input order.
// Blocks whose location cannot be resolved keep their code and get an
// empty name; they are counted, not rejected. A malformed network
// aborts the whole join.
func Join(locs geocsv.Locations, blocks []model.BlockRecord, stamp string) ([]model.OutputRow, int, error) {
	rows := make([]model.OutputRow, 0, len(blocks))
	unresolved := 0

	for _, block := range blocks {
		r, err := iprange.FromCIDR(block.Network)
		if err != nil {
			return nil, 0, err
		}

		code, name, ok := resolveLocation(locs, block)
		if !ok {
			unresolved++
		}

		rows = append(rows, model.OutputRow{
			LastChanged: stamp,
			Network:     block.Network,
			StartIP:     iprange.Format(r.First),
			EndIP:       iprange.Format(r.Last),
			From:        r.First,
			To:          r.Last,
			Code:        code,
			Name:        name,
		})
	}
	return rows, unresolved, nil
}

// resolveLocation finds the country code and name for a block. GeoLite2
// blocks try their geoname id candidates in order; plain blocks look up
// their own code and keep it even when the locations table has no entry.
func resolveLocation(locs geocsv.Locations, block model.BlockRecord) (code, name string, ok bool) {
	if len(block.GeonameIDs) > 0 {
		for _, id := range block.GeonameIDs {
			if id == "" {
				continue
			}
			if loc, found := locs[id]; found {
				return loc.Code, loc.Name, true
			}
		}
		return "", "", false
	}

	if loc, found := locs[block.Code]; found {
		return block.Code, loc.Name, true
	}
	return block.Code, "", false
}
