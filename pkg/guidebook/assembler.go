package guidebook

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/tripcraft/guidebook/pkg/guidebook/docstore"
)

// BulkAdd merges candidate ids into an existing id set, preserving the
// original order of existing followed by new candidates in their supplied
// order. Duplicates are skipped silently; a duplicate is a no-op success,
// not a failure. The inputs are never mutated, and the operation is
// idempotent: applying the same candidates twice equals applying them once.
func BulkAdd(existing, candidates []string) []string {
	merged := slices.Clone(existing)
	for _, id := range candidates {
		if slices.Contains(merged, id) {
			continue
		}
		merged = append(merged, id)
	}
	return merged
}

// ComputeModuleCounts derives the per-tier counters from the module
// references. Pure and deterministic; recomputed on every save rather than
// trusted from client state, so displayed counters cannot drift from the
// arrays they summarize.
func ComputeModuleCounts(m GuidebookModules) ModuleCounts {
	var counts ModuleCounts
	if !m.CountryStorytelling.IsZero() {
		counts.L1++
	}
	if !m.CityStorytelling.IsZero() {
		counts.L1++
	}
	if !m.Transport.IsZero() {
		counts.L2++
	}
	if !m.Finance.IsZero() {
		counts.L2++
	}
	if !m.Emergency.IsZero() {
		counts.L2++
	}
	counts.L3 = len(m.AttractionPlaceIDs) + len(m.DiningPlaceIDs) + len(m.ServiceIDs) + len(m.ShoppingIDs)
	counts.L4 = len(m.AttractionSpecialIDs) + len(m.CultureSpecialIDs)
	return counts
}

// ModuleAssembler builds and persists guidebook documents.
type ModuleAssembler struct {
	store docstore.Store
	now   func() time.Time
}

// NewModuleAssembler creates an assembler backed by the given store.
func NewModuleAssembler(store docstore.Store) *ModuleAssembler {
	return &ModuleAssembler{store: store, now: time.Now}
}

// AssembleRequest carries the operator's basic info and module selections.
// An empty ID assembles a new guidebook; otherwise the existing document is
// replaced.
type AssembleRequest struct {
	ID          string
	TitleKr     string
	TitleEn     string
	CityCode    string
	CountryCode string
	Modules     GuidebookModules
}

// validate reports every missing required field at once so the form can
// surface field-level messages in a single round trip.
func (r *AssembleRequest) validate() error {
	var missing []string
	if r.TitleKr == "" {
		missing = append(missing, "titleKr")
	}
	if r.TitleEn == "" {
		missing = append(missing, "titleEn")
	}
	if r.CityCode == "" {
		missing = append(missing, "cityCode")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Assemble validates the request, composes the full guidebook document with
// freshly computed counts, and persists it. On validation failure nothing is
// persisted.
func (a *ModuleAssembler) Assemble(ctx context.Context, req AssembleRequest) (*Guidebook, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	now := a.now().UTC()
	modules := normalizeModules(req.Modules)
	gb := &Guidebook{
		ID:          req.ID,
		TitleKr:     req.TitleKr,
		TitleEn:     req.TitleEn,
		CityCode:    req.CityCode,
		CountryCode: req.CountryCode,
		Modules:     modules,
		Counts:      ComputeModuleCounts(modules),
		UpdatedAt:   now,
	}

	doc, err := toDocument(gb)
	if err != nil {
		return nil, &GuidebookError{GuidebookID: gb.ID, Op: "assemble", Err: err}
	}

	if gb.ID == "" {
		gb.CreatedAt = now
		id, err := a.store.Create(ctx, docstore.CollectionGuidebooks, doc)
		if err != nil {
			return nil, &GuidebookError{Op: "assemble", Err: err}
		}
		gb.ID = id
		return gb, nil
	}

	err = a.store.Update(ctx, docstore.CollectionGuidebooks, gb.ID, doc)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("assemble guidebook %s: %w", gb.ID, ErrGuidebookNotFound)
		}
		return nil, &GuidebookError{GuidebookID: gb.ID, Op: "assemble", Err: err}
	}
	return gb, nil
}

// normalizeModules dedups every bulk reference array and strips provenance
// from the single refs. Provenance is a load-time computation; only ids
// survive persistence.
func normalizeModules(m GuidebookModules) GuidebookModules {
	m.CountryStorytelling.Source = ""
	m.CityStorytelling.Source = ""
	m.Transport.Source = ""
	m.Finance.Source = ""
	m.Emergency.Source = ""
	m.AttractionSpecialIDs = BulkAdd(nil, m.AttractionSpecialIDs)
	m.AttractionPlaceIDs = BulkAdd(nil, m.AttractionPlaceIDs)
	m.CultureSpecialIDs = BulkAdd(nil, m.CultureSpecialIDs)
	m.DiningPlaceIDs = BulkAdd(nil, m.DiningPlaceIDs)
	m.ServiceIDs = BulkAdd(nil, m.ServiceIDs)
	m.ShoppingIDs = BulkAdd(nil, m.ShoppingIDs)
	return m
}
