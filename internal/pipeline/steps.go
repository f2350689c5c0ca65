package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xastools/beamcat/internal/database"
	"github.com/xastools/beamcat/internal/extract"
	"github.com/xastools/beamcat/internal/model"
	"github.com/xastools/beamcat/internal/rules"
)

// Fetcher retrieves a source page as a complete UTF-8 document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// PageCache stores and returns raw pages per region.
type PageCache interface {
	Get(ctx context.Context, region model.Region) (*database.CachedPage, error)
	Put(ctx context.Context, region model.Region, url, html string) error
}

// PageStep obtains the region's raw page and parses it.
//
// In normal mode it fetches the page and stores it in the cache; a
// fetch failure is fatal for the run, with no retry here. In cached
// mode it reads the page back from the cache and an empty cache is
// equally fatal, because extraction must never run on a guessed page.
type PageStep struct {
	// fetcher retrieves the page over HTTP.
	fetcher Fetcher

	// cache is the local page store. May be nil, in which case fetched
	// pages are simply not persisted.
	cache PageCache

	// useCache reads the page from the cache instead of fetching.
	useCache bool

	// logger for structured logging.
	logger *slog.Logger
}

// NewPageStep creates the page acquisition step.
func NewPageStep(fetcher Fetcher, cache PageCache, useCache bool, logger *slog.Logger) *PageStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageStep{fetcher: fetcher, cache: cache, useCache: useCache, logger: logger}
}

// Name returns the step name.
func (s *PageStep) Name() string { return "fetch-page" }

// Do acquires and parses the page into the state.
func (s *PageStep) Do(ctx context.Context, st *State) error {
	raw, err := s.acquire(ctx, st.Region)
	if err != nil {
		return err
	}

	page, err := extract.NewPage(raw)
	if err != nil {
		return fmt.Errorf("region %s: failed to parse page: %w", st.Region, err)
	}

	s.logger.Debug("page parsed", "region", st.Region, "tables", page.TableCount())
	st.Page = page
	return nil
}

// acquire returns the raw page from the cache or the network.
func (s *PageStep) acquire(ctx context.Context, region model.Region) (string, error) {
	if s.useCache {
		cached, err := s.cache.Get(ctx, region)
		if err != nil {
			return "", err
		}
		s.logger.Debug("using cached page",
			"region", region,
			"fetchedAt", cached.FetchedAt,
		)
		return cached.HTML, nil
	}

	raw, err := s.fetcher.Fetch(ctx, region.URL())
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		// Caching is a convenience for later --cached runs; a write
		// failure must not abort a run that already has the page.
		if err := s.cache.Put(ctx, region, region.URL(), raw); err != nil {
			s.logger.Warn("failed to cache page", "region", region, "error", err)
		}
	}
	return raw, nil
}

// FacilitiesStep extracts the ordered facility list from the master
// table and materializes the facility -> table-slot mapping.
type FacilitiesStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// NewFacilitiesStep creates the facility-list step.
func NewFacilitiesStep(logger *slog.Logger) *FacilitiesStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FacilitiesStep{logger: logger}
}

// Name returns the step name.
func (s *FacilitiesStep) Name() string { return "facility-list" }

// Do extracts facilities and initializes the catalog.
func (s *FacilitiesStep) Do(_ context.Context, st *State) error {
	facilities, err := extract.Facilities(st.Page, st.Region)
	if err != nil {
		return err
	}

	s.logger.Debug("facilities extracted", "region", st.Region, "count", len(facilities))
	st.Slots = extract.FacilitySlots(facilities)
	st.Catalog = model.NewCatalog(st.Region)
	return nil
}

// BeamlinesStep extracts every facility's beamline table and merges the
// per-facility record maps into the catalog in facility-list order.
type BeamlinesStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// NewBeamlinesStep creates the beamline-tables step.
func NewBeamlinesStep(logger *slog.Logger) *BeamlinesStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &BeamlinesStep{logger: logger}
}

// Name returns the step name.
func (s *BeamlinesStep) Name() string { return "beamline-tables" }

// Do extracts all per-facility tables. A structural mismatch in any
// table aborts the whole region rather than emitting corrupt fields.
func (s *BeamlinesStep) Do(_ context.Context, st *State) error {
	for _, slot := range st.Slots {
		beamlines, err := extract.BeamlineTable(st.Page, st.Region, slot.Facility, slot.Slot)
		if err != nil {
			return err
		}
		s.logger.Debug("facility extracted",
			"region", st.Region,
			"facility", slot.Facility,
			"beamlines", len(beamlines),
		)
		st.Catalog.Add(slot.Facility, beamlines)
	}
	return nil
}

// OverridesStep patches the catalog with the built-in correction table
// plus any user-supplied extra overrides.
type OverridesStep struct {
	// extra are user-supplied overrides from the config file.
	extra []rules.Override

	// logger for structured logging.
	logger *slog.Logger
}

// NewOverridesStep creates the manual-overrides step.
func NewOverridesStep(extra []rules.Override, logger *slog.Logger) *OverridesStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &OverridesStep{extra: extra, logger: logger}
}

// Name returns the step name.
func (s *OverridesStep) Name() string { return "manual-overrides" }

// Do applies the overrides. Never fails: stale keys are ignored.
func (s *OverridesStep) Do(_ context.Context, st *State) error {
	rules.ApplyOverrides(st.Catalog, s.extra)
	return nil
}
