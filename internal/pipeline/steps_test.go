package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xastools/beamcat/internal/database"
	"github.com/xastools/beamcat/internal/extract"
	"github.com/xastools/beamcat/internal/log"
	"github.com/xastools/beamcat/internal/model"
	"github.com/xastools/beamcat/internal/report"
)

// sourcePage mirrors the real page shape: a master table with a header
// label row and one facility row, followed by that facility's table.
const sourcePage = `<html><body>
<table>
  <tr><th>Operating</th></tr>
  <tr><td>APS Advanced Photon Source</td><td>USA</td></tr>
</table>
<table>
  <tr><th>Beamline</th><th>Range</th><th>Flux</th><th>Size</th><th>Purpose</th><th>Status</th></tr>
  <tr><td>10-ID-B</td><td>6-23</td><td>10<sup>11</sup></td><td>0.5x0.5</td><td>General</td><td>Operational</td></tr>
</table>
</body></html>`

// fakeFetcher serves a fixed page or a fixed error.
type fakeFetcher struct {
	html string
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (string, error) {
	return f.html, f.err
}

// buildPipeline wires the full region pipeline against a fetcher.
func buildPipeline(fetcher Fetcher, cache PageCache, useCache bool) *Pipeline {
	logger := log.Discard()
	p := New(WithLogger(logger))
	p.AddSteps(
		NewPageStep(fetcher, cache, useCache, logger),
		NewFacilitiesStep(logger),
		NewBeamlinesStep(logger),
		NewOverridesStep(nil, logger),
	)
	return p
}

// TestRegionPipeline runs the whole per-region build end to end.
func TestRegionPipeline(t *testing.T) {
	t.Parallel()

	t.Run("builds the expected catalog", func(t *testing.T) {
		t.Parallel()

		st := NewState(model.RegionAmericas)
		p := buildPipeline(&fakeFetcher{html: sourcePage}, nil, false)

		if err := p.Execute(context.Background(), st); err != nil {
			t.Fatalf("pipeline failed: %v", err)
		}

		if len(st.Catalog.Facilities) != 1 || st.Catalog.Facilities[0] != "APS" {
			t.Fatalf("expected facilities [APS], got %v", st.Catalog.Facilities)
		}

		bl, ok := st.Catalog.Lookup("APS", "10-ID-B")
		if !ok {
			t.Fatalf("expected beamline 10-ID-B, got %v", st.Catalog.Records)
		}

		want := model.Beamline{
			Facility: "APS",
			Range:    "6-23",
			Flux:     "10^11",
			Size:     "0.5x0.5",
			Purpose:  "General",
			Status:   "Operational",
			Name:     "",
			// The override table wins over the (absent) heuristic result.
			Website: "https://mrcat.iit.edu/",
		}
		if bl != want {
			t.Errorf("record mismatch:\n got %+v\nwant %+v", bl, want)
		}
	})

	t.Run("two runs on identical input serialize byte-identically", func(t *testing.T) {
		t.Parallel()

		run := func() []byte {
			st := NewState(model.RegionAmericas)
			p := buildPipeline(&fakeFetcher{html: sourcePage}, nil, false)
			if err := p.Execute(context.Background(), st); err != nil {
				t.Fatalf("pipeline failed: %v", err)
			}
			data, err := report.Serialize(st.Catalog)
			if err != nil {
				t.Fatalf("serialize failed: %v", err)
			}
			return data
		}

		if !bytes.Equal(run(), run()) {
			t.Error("pipeline output is not deterministic")
		}
	})

	t.Run("fetch failure aborts the run", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection refused")
		st := NewState(model.RegionAsia)
		p := buildPipeline(&fakeFetcher{err: boom}, nil, false)

		if err := p.Execute(context.Background(), st); !errors.Is(err, boom) {
			t.Errorf("expected fetch error to propagate, got %v", err)
		}
		if st.Catalog != nil {
			t.Error("expected no catalog after an aborted run")
		}
	})

	t.Run("structural mismatch aborts the run", func(t *testing.T) {
		t.Parallel()

		page := `<html><body>
		<table><tr><td>APS</td></tr></table>
		<table><tr><td>10-ID-B</td><td>6-23</td></tr></table>
		</body></html>`

		st := NewState(model.RegionAmericas)
		p := buildPipeline(&fakeFetcher{html: page}, nil, false)

		if err := p.Execute(context.Background(), st); !errors.Is(err, extract.ErrRowShape) {
			t.Errorf("expected ErrRowShape, got %v", err)
		}
	})
}

// TestPageStepCaching tests page-cache interaction.
func TestPageStepCaching(t *testing.T) {
	t.Parallel()

	t.Run("fetched pages are stored in the cache", func(t *testing.T) {
		t.Parallel()

		cache, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open cache: %v", err)
		}
		defer cache.Close()

		st := NewState(model.RegionEurope)
		p := buildPipeline(&fakeFetcher{html: sourcePage}, cache, false)
		if err := p.Execute(context.Background(), st); err != nil {
			t.Fatalf("pipeline failed: %v", err)
		}

		cached, err := cache.Get(context.Background(), model.RegionEurope)
		if err != nil {
			t.Fatalf("expected page to be cached: %v", err)
		}
		if cached.HTML != sourcePage {
			t.Error("cached page must be byte-identical to the fetched page")
		}
	})

	t.Run("cached mode never touches the network", func(t *testing.T) {
		t.Parallel()

		cache, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open cache: %v", err)
		}
		defer cache.Close()

		ctx := context.Background()
		region := model.RegionAmericas
		if err := cache.Put(ctx, region, region.URL(), sourcePage); err != nil {
			t.Fatalf("failed to seed cache: %v", err)
		}

		// The fetcher errors if called, proving the cache served the page.
		st := NewState(region)
		p := buildPipeline(&fakeFetcher{err: errors.New("network touched")}, cache, true)
		if err := p.Execute(ctx, st); err != nil {
			t.Fatalf("pipeline failed: %v", err)
		}
		if _, ok := st.Catalog.Lookup("APS", "10-ID-B"); !ok {
			t.Error("expected catalog built from cached page")
		}
	})

	t.Run("cached mode with an empty cache is fatal", func(t *testing.T) {
		t.Parallel()

		cache, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open cache: %v", err)
		}
		defer cache.Close()

		st := NewState(model.RegionAsia)
		p := buildPipeline(&fakeFetcher{html: sourcePage}, cache, true)

		if err := p.Execute(context.Background(), st); !errors.Is(err, database.ErrNotCached) {
			t.Errorf("expected ErrNotCached, got %v", err)
		}
	})
}
