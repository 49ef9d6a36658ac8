package guidebook

import (
	"context"
	"errors"
	"fmt"

	"github.com/tripcraft/guidebook/pkg/guidebook/docstore"
)

// AutoLinker resolves guidebook single-reference modules against the library
// bindings stored on the owning country and city records, without operator
// intervention. Each resolved Ref carries its provenance: SourceAutoLinked
// when bound here, SourceManual (and an empty id) when no library object
// exists and the field stays editable.
//
// Resolution must re-run whenever the bound country or city changes; a
// previously auto-linked value is cleared when the new parent has no library
// object, so stale cross-links cannot survive a re-selection.
type AutoLinker struct {
	store docstore.Store
}

// NewAutoLinker creates an auto-linker backed by the given store.
func NewAutoLinker(store docstore.Store) *AutoLinker {
	return &AutoLinker{store: store}
}

// StorytellingLinks is the result of resolving the L1 storytelling modules.
type StorytellingLinks struct {
	Country Ref `json:"country"`
	City    Ref `json:"city"`
}

// PracticalLinks is the result of resolving the L2 practical-info modules.
// Fields resolve independently; partial auto-linking is expected.
type PracticalLinks struct {
	Transport Ref `json:"transport"`
	Finance   Ref `json:"finance"`
	Emergency Ref `json:"emergency"`
}

// ResolveStorytelling binds the country and city storytelling references from
// the owning records. A missing country or city record leaves the matching
// field unlinked and editable; it is never a blocking error.
func (a *AutoLinker) ResolveStorytelling(ctx context.Context, countryID, cityCode string) (StorytellingLinks, error) {
	var links StorytellingLinks

	detail, err := a.fetchCountryDetail(ctx, countryID)
	if err != nil {
		return StorytellingLinks{}, err
	}
	if detail != nil {
		links.Country = autoRef(detail.StorytellingLibraryID)
	}

	city, err := a.fetchCityByCode(ctx, cityCode)
	if err != nil {
		return StorytellingLinks{}, err
	}
	if city != nil {
		links.City = autoRef(city.StorytellingLibraryID)
	}
	return links, nil
}

// ResolvePracticalInfo binds the transport, finance, and emergency references
// from the city record. Each field resolves on its own.
func (a *AutoLinker) ResolvePracticalInfo(ctx context.Context, cityCode string) (PracticalLinks, error) {
	city, err := a.fetchCityByCode(ctx, cityCode)
	if err != nil {
		return PracticalLinks{}, err
	}
	if city == nil {
		return PracticalLinks{}, nil
	}
	return PracticalLinks{
		Transport: autoRef(city.TransportationLibraryID),
		Finance:   autoRef(city.FinanceLibraryID),
		Emergency: autoRef(city.EmergencyLibraryID),
	}, nil
}

// autoRef wraps a stored library id as an auto-linked reference, or an empty
// manual-entry reference when no library object is bound.
func autoRef(libraryID string) Ref {
	if libraryID == "" {
		return Ref{Source: SourceManual}
	}
	return Ref{ID: libraryID, Source: SourceAutoLinked}
}

// fetchCountryDetail returns nil without error when the record is absent.
func (a *AutoLinker) fetchCountryDetail(ctx context.Context, countryID string) (*CountryDetail, error) {
	if countryID == "" {
		return nil, nil
	}
	doc, err := a.store.GetByID(ctx, docstore.CollectionCountryDetails, countryID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("auto-link country %s: %w", countryID, err)
	}
	var detail CountryDetail
	if err := fromDocument(doc, &detail); err != nil {
		return nil, fmt.Errorf("auto-link country %s: %w", countryID, err)
	}
	return &detail, nil
}

// fetchCityByCode returns nil without error when no city has the code.
func (a *AutoLinker) fetchCityByCode(ctx context.Context, cityCode string) (*CityDetail, error) {
	if cityCode == "" {
		return nil, nil
	}
	docs, err := a.store.Query(ctx, docstore.CollectionCityDetails, docstore.Eq("city_code", cityCode))
	if err != nil {
		return nil, fmt.Errorf("auto-link city %s: %w", cityCode, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	var city CityDetail
	if err := fromDocument(docs[0], &city); err != nil {
		return nil, fmt.Errorf("auto-link city %s: %w", cityCode, err)
	}
	return &city, nil
}
