package model

import (
	"errors"
	"testing"
)

// TestParseRegion tests region name parsing.
func TestParseRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Region
		wantErr bool
	}{
		{name: "americas lowercase", input: "americas", want: RegionAmericas},
		{name: "asia mixed case", input: "Asia", want: RegionAsia},
		{name: "europe with whitespace", input: "  europe ", want: RegionEurope},
		{name: "unknown region", input: "antarctica", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseRegion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got none", tt.input)
				}
				if !errors.Is(err, ErrUnknownRegion) {
					t.Errorf("expected ErrUnknownRegion, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestRegionURLs verifies every region has a source URL and file names.
func TestRegionURLs(t *testing.T) {
	t.Parallel()

	for _, region := range Regions() {
		if region.URL() == "" {
			t.Errorf("region %s has no source URL", region)
		}
		if region.CatalogFile() != "beamlines_"+region.String()+".json" {
			t.Errorf("unexpected catalog file name %q for region %s", region.CatalogFile(), region)
		}
		if region.SummaryFile() != "beamlines_"+region.String()+".md" {
			t.Errorf("unexpected summary file name %q for region %s", region.SummaryFile(), region)
		}
	}
}
