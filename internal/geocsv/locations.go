package geocsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/fediasonin/geomerge/internal/model"
)

// Locations is the lookup built from the locations table. Plain tables
// are keyed by country code; GeoLite2-style tables by geoname id.
type Locations map[string]model.LocationRecord

// LoadLocations reads the locations table from path.
func LoadLocations(path string) (Locations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening locations file: %w", err)
	}
	defer f.Close()

	locs, err := ReadLocations(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return locs, nil
}

// ReadLocations parses a locations table. The header decides the mode:
// geoname_id + country_iso_code + country_name selects GeoLite2 keying,
// otherwise a code column and a name column are required. Duplicate
// keys are last-write-wins.
func ReadLocations(r io.Reader) (Locations, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading locations header: %w", err)
	}
	cols := columnIndex(header)

	keyIdx, codeIdx, nameIdx, err := locationColumns(cols)
	if err != nil {
		return nil, err
	}

	locs := make(Locations)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading locations table: %w", err)
		}
		locs[field(record, keyIdx)] = model.LocationRecord{
			Code: field(record, codeIdx),
			Name: field(record, nameIdx),
		}
	}
	return locs, nil
}

func locationColumns(cols map[string]int) (key, code, name int, err error) {
	geoID, hasGeoID := cols["geoname_id"]
	isoCode, hasISO := cols["country_iso_code"]
	countryName, hasCountryName := cols["country_name"]

	if hasGeoID && hasISO && hasCountryName {
		return geoID, isoCode, countryName, nil
	}

	code, okCode := firstOf(cols, "code", "country_code", "country_iso_code")
	name, okName := firstOf(cols, "name", "country_name")
	if !okCode || !okName {
		return 0, 0, 0, fmt.Errorf("locations table: %w: need code and name columns (or geoname_id, country_iso_code, country_name)", ErrMissingColumn)
	}
	return code, code, name, nil
}
