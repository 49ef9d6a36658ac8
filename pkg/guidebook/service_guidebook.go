package guidebook

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/tripcraft/guidebook/pkg/guidebook/docstore"
)

// Auto-link operations

func (s *service) ResolveStorytelling(ctx context.Context, countryID, cityCode string) (StorytellingLinks, error) {
	return s.linker.ResolveStorytelling(ctx, countryID, cityCode)
}

func (s *service) ResolvePracticalInfo(ctx context.Context, cityCode string) (PracticalLinks, error) {
	return s.linker.ResolvePracticalInfo(ctx, cityCode)
}

// PrefillGuidebookModules runs both resolvers and returns the module set an
// editor starts from: library-bound references auto-linked, everything else
// left for manual entry.
func (s *service) PrefillGuidebookModules(ctx context.Context, countryID, cityCode string) (GuidebookModules, error) {
	story, err := s.linker.ResolveStorytelling(ctx, countryID, cityCode)
	if err != nil {
		return GuidebookModules{}, err
	}
	practical, err := s.linker.ResolvePracticalInfo(ctx, cityCode)
	if err != nil {
		return GuidebookModules{}, err
	}
	return GuidebookModules{
		CountryStorytelling: story.Country,
		CityStorytelling:    story.City,
		Transport:           practical.Transport,
		Finance:             practical.Finance,
		Emergency:           practical.Emergency,
	}, nil
}

// Guidebook operations

func (s *service) AssembleGuidebook(ctx context.Context, req AssembleRequest) (*Guidebook, error) {
	var previous []string
	if req.ID != "" {
		existing, err := s.GetGuidebook(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		previous = singleRefIDs(existing.Modules)
	}

	gb, err := s.assembler.Assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	// Keep library reference counts in step with the single-ref bindings.
	current := singleRefIDs(gb.Modules)
	for _, id := range current {
		if !slices.Contains(previous, id) {
			if err := s.adjustReferenceCount(ctx, id, 1); err != nil {
				return nil, err
			}
		}
	}
	for _, id := range previous {
		if !slices.Contains(current, id) {
			if err := s.adjustReferenceCount(ctx, id, -1); err != nil {
				return nil, err
			}
		}
	}

	s.fireGuidebookAssembled(ctx, gb)
	return gb, nil
}

func (s *service) GetGuidebook(ctx context.Context, id string) (*Guidebook, error) {
	doc, err := s.store.GetByID(ctx, docstore.CollectionGuidebooks, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrGuidebookNotFound
		}
		return nil, &GuidebookError{GuidebookID: id, Op: "get", Err: err}
	}
	var gb Guidebook
	if err := fromDocument(doc, &gb); err != nil {
		return nil, err
	}
	if err := s.annotateProvenance(ctx, &gb); err != nil {
		return nil, err
	}
	return &gb, nil
}

func (s *service) ListGuidebooks(ctx context.Context) ([]*Guidebook, error) {
	docs, err := s.store.Query(ctx, docstore.CollectionGuidebooks)
	if err != nil {
		return nil, fmt.Errorf("list guidebooks: %w", err)
	}
	result := make([]*Guidebook, 0, len(docs))
	for _, doc := range docs {
		var gb Guidebook
		if err := fromDocument(doc, &gb); err != nil {
			return nil, err
		}
		// Same load-time provenance as GetGuidebook; list responses must
		// not differ from single fetches.
		if err := s.annotateProvenance(ctx, &gb); err != nil {
			return nil, err
		}
		result = append(result, &gb)
	}
	return result, nil
}

func (s *service) DeleteGuidebook(ctx context.Context, id string) error {
	gb, err := s.GetGuidebook(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, docstore.CollectionGuidebooks, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrGuidebookNotFound
		}
		return &GuidebookError{GuidebookID: id, Op: "delete", Err: err}
	}
	for _, refID := range singleRefIDs(gb.Modules) {
		if err := s.adjustReferenceCount(ctx, refID, -1); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) BulkAddGuidebookRefs(ctx context.Context, guidebookID string, array RefArray, candidateIDs []string) (*Guidebook, error) {
	if !array.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRefArray, array)
	}
	gb, err := s.GetGuidebook(ctx, guidebookID)
	if err != nil {
		return nil, err
	}
	gb.Modules.setRefs(array, BulkAdd(gb.Modules.refs(array), candidateIDs))
	return s.saveGuidebookModules(ctx, gb)
}

func (s *service) MoveGuidebookRef(ctx context.Context, guidebookID string, array RefArray, from, to int) (*Guidebook, error) {
	if !array.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRefArray, array)
	}
	gb, err := s.GetGuidebook(ctx, guidebookID)
	if err != nil {
		return nil, err
	}
	list := NewRefList(gb.Modules.refs(array)...)
	if err := list.MoveAt(from, to); err != nil {
		return nil, err
	}
	gb.Modules.setRefs(array, list.IDs())
	return s.saveGuidebookModules(ctx, gb)
}

func (s *service) RemoveGuidebookRef(ctx context.Context, guidebookID string, array RefArray, index int) (*Guidebook, error) {
	if !array.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRefArray, array)
	}
	gb, err := s.GetGuidebook(ctx, guidebookID)
	if err != nil {
		return nil, err
	}
	list := NewRefList(gb.Modules.refs(array)...)
	if _, err := list.RemoveAt(index); err != nil {
		return nil, err
	}
	gb.Modules.setRefs(array, list.IDs())
	return s.saveGuidebookModules(ctx, gb)
}

// saveGuidebookModules persists a modules change, recomputing the tier counts
// like any other save.
func (s *service) saveGuidebookModules(ctx context.Context, gb *Guidebook) (*Guidebook, error) {
	gb.Modules = normalizeModules(gb.Modules)
	gb.Counts = ComputeModuleCounts(gb.Modules)
	gb.UpdatedAt = s.now().UTC()

	doc, err := toDocument(gb)
	if err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, docstore.CollectionGuidebooks, gb.ID, doc); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrGuidebookNotFound
		}
		return nil, &GuidebookError{GuidebookID: gb.ID, Op: "update_modules", Err: err}
	}
	return gb, nil
}

// annotateProvenance recomputes each single reference's source at load time
// by comparing it to the library bindings stored on the owning country and
// city records. Provenance is never persisted.
func (s *service) annotateProvenance(ctx context.Context, gb *Guidebook) error {
	city, err := s.linker.fetchCityByCode(ctx, gb.CityCode)
	if err != nil {
		return err
	}
	detail, err := s.fetchCountryDetailByCode(ctx, gb.CountryCode)
	if err != nil {
		return err
	}

	countryStoryID, cityStoryID, transportID, financeID, emergencyID := "", "", "", "", ""
	if detail != nil {
		countryStoryID = detail.StorytellingLibraryID
	}
	if city != nil {
		cityStoryID = city.StorytellingLibraryID
		transportID = city.TransportationLibraryID
		financeID = city.FinanceLibraryID
		emergencyID = city.EmergencyLibraryID
	}

	gb.Modules.CountryStorytelling = annotateRef(gb.Modules.CountryStorytelling, countryStoryID)
	gb.Modules.CityStorytelling = annotateRef(gb.Modules.CityStorytelling, cityStoryID)
	gb.Modules.Transport = annotateRef(gb.Modules.Transport, transportID)
	gb.Modules.Finance = annotateRef(gb.Modules.Finance, financeID)
	gb.Modules.Emergency = annotateRef(gb.Modules.Emergency, emergencyID)
	return nil
}

// annotateRef marks a reference auto-linked when it matches the owning
// record's library binding, manual otherwise.
func annotateRef(ref Ref, libraryID string) Ref {
	if ref.ID == "" {
		ref.Source = ""
		return ref
	}
	if libraryID != "" && ref.ID == libraryID {
		ref.Source = SourceAutoLinked
	} else {
		ref.Source = SourceManual
	}
	return ref
}

// fetchCountryDetailByCode resolves a country's detail record from its ISO
// code. Returns nil without error when either lookup comes up empty.
func (s *service) fetchCountryDetailByCode(ctx context.Context, isoCode string) (*CountryDetail, error) {
	if isoCode == "" {
		return nil, nil
	}
	docs, err := s.store.Query(ctx, docstore.CollectionCountries, docstore.Eq("iso_code", isoCode))
	if err != nil {
		return nil, fmt.Errorf("lookup country %s: %w", isoCode, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	var country Country
	if err := fromDocument(docs[0], &country); err != nil {
		return nil, err
	}
	return s.linker.fetchCountryDetail(ctx, country.ID)
}

// singleRefIDs returns the non-empty single module reference ids.
func singleRefIDs(m GuidebookModules) []string {
	var ids []string
	for _, ref := range m.SingleRefs() {
		if !ref.IsZero() {
			ids = append(ids, ref.ID)
		}
	}
	return ids
}
