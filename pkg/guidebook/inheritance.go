package guidebook

import (
	"context"
	"errors"
	"fmt"

	"github.com/tripcraft/guidebook/pkg/guidebook/docstore"
)

// NoDataPlaceholder is the sentinel shown for inheritable fields whose parent
// country detail is missing. The UI always has a renderable value; absence of
// the parent is not an error condition.
const NoDataPlaceholder = "정보 없음"

// EffectiveValue resolves a city field: the custom value when the override
// flag is set, the inherited snapshot otherwise. Pure; no I/O.
func EffectiveValue(field Field, overrides Overrides, inherited InheritedData, custom CustomData) string {
	if overrides[field] {
		return custom[field]
	}
	return inherited[field]
}

// InheritanceResolver keeps a city's inherited snapshot synchronized with its
// parent country detail.
type InheritanceResolver struct {
	store docstore.Store
}

// NewInheritanceResolver creates a resolver backed by the given store.
func NewInheritanceResolver(store docstore.Store) *InheritanceResolver {
	return &InheritanceResolver{store: store}
}

// RefreshInheritance fetches the country detail and maps it into the
// six-field inherited snapshot. A missing country detail degrades to the
// no-data placeholder for every field rather than failing; any other store
// error propagates.
//
// Must be re-invoked whenever the bound country changes: a stale snapshot is
// a correctness bug, not a performance concern.
func (r *InheritanceResolver) RefreshInheritance(ctx context.Context, countryID string) (InheritedData, error) {
	doc, err := r.store.GetByID(ctx, docstore.CollectionCountryDetails, countryID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return placeholderInheritedData(), nil
		}
		return nil, fmt.Errorf("refresh inheritance for country %s: %w", countryID, err)
	}

	var detail CountryDetail
	if err := fromDocument(doc, &detail); err != nil {
		return nil, fmt.Errorf("refresh inheritance for country %s: %w", countryID, err)
	}
	return InheritFrom(&detail), nil
}

// InheritFrom maps a country detail into the inherited snapshot shape.
func InheritFrom(detail *CountryDetail) InheritedData {
	return InheritedData{
		FieldVisaInfo:    detail.PracticalInfo.VisaInfo,
		FieldCurrency:    detail.PracticalInfo.Currency,
		FieldVoltage:     detail.PracticalInfo.Voltage,
		FieldLanguage:    detail.PracticalInfo.MainLanguage,
		FieldSafetyLevel: string(detail.Safety.SafetyLevel),
		FieldSafetyTips:  detail.Safety.SafetyTips,
	}
}

func placeholderInheritedData() InheritedData {
	data := make(InheritedData, len(InheritableFields))
	for _, f := range InheritableFields {
		data[f] = NoDataPlaceholder
	}
	return data
}
