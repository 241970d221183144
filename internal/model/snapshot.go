package model

import "time"

// LocationRecord is one row of the locations table: a country code and
// its display name.
type LocationRecord struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// BlockRecord is one row of the blocks table: an IP network in CIDR
// notation and the key(s) used to resolve its location. Plain tables
// carry a country code; GeoLite2-style tables carry geoname id
// candidates in lookup order.
type BlockRecord struct {
	Network    string   `json:"network"`
	Code       string   `json:"code,omitempty"`
	GeonameIDs []string `json:"geoname_ids,omitempty"`
}

// OutputRow is one row of the merged report. From and To hold the
// numeric range bounds and are only emitted in decimal mode.
type OutputRow struct {
	LastChanged string `json:"_last_changed"`
	Network     string `json:"network"`
	StartIP     string `json:"start_ip"`
	EndIP       string `json:"end_ip"`
	From        uint32 `json:"from"`
	To          uint32 `json:"to"`
	Code        string `json:"code"`
	Name        string `json:"name"`
}

// Snapshot records one completed merge run in the journal
type Snapshot struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Stamp         string    `json:"stamp"`
	LocationsPath string    `json:"locations_path"`
	BlocksPath    string    `json:"blocks_path"`
	OutputPath    string    `json:"output_path"`
	Rows          int       `json:"rows"`
	Unresolved    int       `json:"unresolved"`
	Digest        string    `json:"digest"`
}
