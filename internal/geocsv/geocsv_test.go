package geocsv

import (
	"errors"
	"strings"
	"testing"
)

func TestReadLocationsPlain(t *testing.T) {
	input := "code,name\nRU,Russia\nDE,Germany\n"

	locs, err := ReadLocations(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadLocations() error = %v", err)
	}

	if len(locs) != 2 {
		t.Fatalf("Expected 2 locations, got %d", len(locs))
	}
	if locs["RU"].Name != "Russia" {
		t.Errorf("Expected name Russia, got %s", locs["RU"].Name)
	}
	if locs["DE"].Code != "DE" {
		t.Errorf("Expected code DE, got %s", locs["DE"].Code)
	}
}

func TestReadLocationsDuplicateLastWins(t *testing.T) {
	input := "code,name\nRU,First\nRU,Second\n"

	locs, err := ReadLocations(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadLocations() error = %v", err)
	}

	if locs["RU"].Name != "Second" {
		t.Errorf("Expected last duplicate to win, got %s", locs["RU"].Name)
	}
}

func TestReadLocationsGeoLite(t *testing.T) {
	input := "geoname_id,locale_code,continent_code,continent_name,country_iso_code,country_name\n" +
		"2017370,en,EU,Europe,RU,Russia\n" +
		"2921044,en,EU,Europe,DE,Germany\n"

	locs, err := ReadLocations(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadLocations() error = %v", err)
	}

	loc, ok := locs["2017370"]
	if !ok {
		t.Fatal("Expected geoname_id keyed entry")
	}
	if loc.Code != "RU" || loc.Name != "Russia" {
		t.Errorf("Expected RU/Russia, got %s/%s", loc.Code, loc.Name)
	}
}

func TestReadLocationsAlternateHeaders(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"country_code and country_name", "country_code,country_name\nRU,Russia\n"},
		{"mixed case header", "Code,Name\nRU,Russia\n"},
		{"extra columns", "id,code,name,comment\n1,RU,Russia,x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locs, err := ReadLocations(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadLocations() error = %v", err)
			}
			if locs["RU"].Name != "Russia" {
				t.Errorf("Expected Russia, got %s", locs["RU"].Name)
			}
		})
	}
}

func TestReadLocationsMissingColumns(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no name column", "code,population\nRU,146000000\n"},
		{"no code column", "name\nRussia\n"},
		{"unrelated header", "a,b,c\n1,2,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLocations(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMissingColumn) {
				t.Errorf("Expected ErrMissingColumn, got %v", err)
			}
		})
	}
}

func TestReadBlocksPlain(t *testing.T) {
	input := "network,code\n1.2.3.0/24,RU\n4.5.6.0/23,DE\n"

	blocks, err := ReadBlocks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadBlocks() error = %v", err)
	}

	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Network != "1.2.3.0/24" || blocks[0].Code != "RU" {
		t.Errorf("Unexpected first block: %+v", blocks[0])
	}
	if blocks[1].Network != "4.5.6.0/23" || blocks[1].Code != "DE" {
		t.Errorf("Unexpected second block: %+v", blocks[1])
	}
}

func TestReadBlocksGeoLite(t *testing.T) {
	input := "network,geoname_id,registered_country_geoname_id,represented_country_geoname_id,is_anonymous_proxy\n" +
		"1.2.3.0/24,2017370,2017370,,0\n" +
		"4.5.6.0/24,,2921044,,0\n"

	blocks, err := ReadBlocks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadBlocks() error = %v", err)
	}

	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if len(blocks[0].GeonameIDs) != 3 {
		t.Fatalf("Expected 3 geoname id candidates, got %d", len(blocks[0].GeonameIDs))
	}
	if blocks[0].GeonameIDs[0] != "2017370" {
		t.Errorf("Expected geoname_id first, got %s", blocks[0].GeonameIDs[0])
	}
	// Second row resolves only through the registered country fallback
	if blocks[1].GeonameIDs[0] != "" || blocks[1].GeonameIDs[1] != "2921044" {
		t.Errorf("Unexpected fallback candidates: %v", blocks[1].GeonameIDs)
	}
}

func TestReadBlocksMissingColumns(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no network column", "cidr,code\n1.2.3.0/24,RU\n"},
		{"no code column", "network,comment\n1.2.3.0/24,x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBlocks(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMissingColumn) {
				t.Errorf("Expected ErrMissingColumn, got %v", err)
			}
		})
	}
}

func TestReadBlocksPreservesOrder(t *testing.T) {
	input := "network,code\n9.9.9.0/24,C\n1.1.1.0/24,A\n5.5.5.0/24,B\n"

	blocks, err := ReadBlocks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadBlocks() error = %v", err)
	}

	want := []string{"9.9.9.0/24", "1.1.1.0/24", "5.5.5.0/24"}
	for i, network := range want {
		if blocks[i].Network != network {
			t.Errorf("Block %d = %s, want %s", i, blocks[i].Network, network)
		}
	}
}

func TestReadRaggedTable(t *testing.T) {
	input := "network,code\n1.2.3.0/24,RU\n4.5.6.0/24\n"

	if _, err := ReadBlocks(strings.NewReader(input)); err == nil {
		t.Error("Expected error for row with missing fields")
	}
}
