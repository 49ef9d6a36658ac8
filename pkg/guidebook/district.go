package guidebook

import (
	"fmt"
	"maps"
	"slices"
)

// BulkAddToDistrictCategory merges candidate place ids into one category of a
// district, with the same dedup-and-append contract as BulkAdd. Ids are
// unique within a category only; the same id may live in other categories of
// the district. The input district is not mutated.
func BulkAddToDistrictCategory(d District, category DistrictCategory, candidateIDs []string) (District, error) {
	if !category.IsValid() {
		return District{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	updated := d
	updated.Contents = maps.Clone(d.Contents)
	if updated.Contents == nil {
		updated.Contents = make(map[DistrictCategory][]string)
	} else {
		for cat, ids := range updated.Contents {
			updated.Contents[cat] = slices.Clone(ids)
		}
	}
	updated.Contents[category] = BulkAdd(updated.Contents[category], candidateIDs)
	return updated, nil
}
