package guidebook

import (
	"time"
)

// SafetyLevel is the domain type for a country's overall safety rating.
type SafetyLevel string

// Safety level constants (typed).
const (
	SafetyLevelSafe     SafetyLevel = "safe"
	SafetyLevelModerate SafetyLevel = "moderate"
	SafetyLevelCaution  SafetyLevel = "caution"
	SafetyLevelDanger   SafetyLevel = "danger"
)

// IsValid reports whether the safety level is one of the known values.
func (s SafetyLevel) IsValid() bool {
	switch s {
	case SafetyLevelSafe, SafetyLevelModerate, SafetyLevelCaution, SafetyLevelDanger:
		return true
	}
	return false
}

// ContentType is the domain type for content library object kinds.
type ContentType string

// Content type constants (typed).
const (
	ContentTypeCountryStory ContentType = "country-story"
	ContentTypeCityStory    ContentType = "city-story"
	ContentTypeTransport    ContentType = "practical-transport"
	ContentTypeFinance      ContentType = "practical-finance"
	ContentTypeEmergency    ContentType = "practical-emergency"
)

// IsValid reports whether the content type is one of the known values.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeCountryStory, ContentTypeCityStory, ContentTypeTransport,
		ContentTypeFinance, ContentTypeEmergency:
		return true
	}
	return false
}

// Field names a city practical-info field that can be inherited from the
// parent country and overridden per city.
type Field string

// Inheritable field constants.
const (
	FieldVisaInfo    Field = "visaInfo"
	FieldCurrency    Field = "currency"
	FieldVoltage     Field = "voltage"
	FieldLanguage    Field = "language"
	FieldSafetyLevel Field = "safetyLevel"
	FieldSafetyTips  Field = "safetyTips"
)

// InheritableFields lists every field subject to country -> city inheritance,
// in display order.
var InheritableFields = []Field{
	FieldVisaInfo,
	FieldCurrency,
	FieldVoltage,
	FieldLanguage,
	FieldSafetyLevel,
	FieldSafetyTips,
}

// IsValid reports whether f is a known inheritable field.
func (f Field) IsValid() bool {
	for _, known := range InheritableFields {
		if f == known {
			return true
		}
	}
	return false
}

// InheritedData is the snapshot of parent-country values a city carries.
type InheritedData map[Field]string

// Overrides maps each inheritable field to whether the city ignores the
// inherited value in favor of its custom value.
type Overrides map[Field]bool

// CustomData holds per-field override values. Entries survive regardless of
// the override flag so toggling off and back on restores the entered value.
type CustomData map[Field]string

// Country is the root identity record.
type Country struct {
	ID        string    `json:"id"`
	NameKr    string    `json:"name_kr"`
	NameEn    string    `json:"name_en"`
	ISOCode   string    `json:"iso_code"`
	Continent string    `json:"continent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PracticalInfo holds a country's practical traveler information. It is the
// source of truth for city inheritance.
type PracticalInfo struct {
	VisaInfo     string `json:"visa_info"`
	Currency     string `json:"currency"`
	Voltage      string `json:"voltage"`
	MainLanguage string `json:"main_language"`
	BasicPhrases string `json:"basic_phrases"`
	PlugType     string `json:"plug_type"`
}

// Safety holds a country's safety rating and advice.
type Safety struct {
	SafetyLevel SafetyLevel `json:"safety_level"`
	SafetyTips  string      `json:"safety_tips"`
}

// CountryDetail extends a Country with practical info, safety, and the
// country-level storytelling binding. One per country, keyed by CountryID.
//
// Mutable nullable fields carry no omitempty: entity saves go through the
// store's merge-style Update, so an empty binding must reach the store as an
// explicit empty or clearing it would never persist.
type CountryDetail struct {
	CountryID             string        `json:"country_id"`
	PracticalInfo         PracticalInfo `json:"practical_info"`
	Safety                Safety        `json:"safety"`
	StorytellingLibraryID string        `json:"storytelling_library_id"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

// CityDetail belongs to exactly one country. InheritedData is a snapshot of
// the parent's six inheritable fields; the effective value of a field is
// CustomData[f] when Overrides[f] is set, InheritedData[f] otherwise.
type CityDetail struct {
	ID        string `json:"id"`
	CityCode  string `json:"city_code"`
	NameKr    string `json:"name_kr"`
	NameEn    string `json:"name_en"`
	CountryID string `json:"country_id"`

	InheritedData InheritedData `json:"inherited_data"`
	Overrides     Overrides     `json:"overrides"`
	CustomData    CustomData    `json:"custom_data"`

	StorytellingLibraryID   string `json:"storytelling_library_id"`
	TransportationLibraryID string `json:"transportation_library_id"`
	FinanceLibraryID        string `json:"finance_library_id"`
	EmergencyLibraryID      string `json:"emergency_library_id"`

	Districts []District `json:"districts"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Effective returns the field's effective value for this city.
func (c *CityDetail) Effective(f Field) string {
	return EffectiveValue(f, c.Overrides, c.InheritedData, c.CustomData)
}

// ToggleOverride flips the override flag for f. Custom data is left intact so
// no entered value is lost by toggling.
func (c *CityDetail) ToggleOverride(f Field) {
	if c.Overrides == nil {
		c.Overrides = Overrides{}
	}
	c.Overrides[f] = !c.Overrides[f]
}

// RefSource is the provenance of a module reference.
type RefSource string

// Reference provenance constants (typed).
const (
	SourceManual     RefSource = "manual"
	SourceAutoLinked RefSource = "auto-linked"
	SourceInherited  RefSource = "inherited"
)

// Ref is a nullable reference into the content library together with its
// provenance. Only the ID is persisted; Source is recomputed at load time.
type Ref struct {
	ID     string    `json:"id,omitempty"`
	Source RefSource `json:"source,omitempty"`
}

// AutoLinked reports whether the reference was bound by the auto-linker.
// Auto-linked references are read-only for the UI layer.
func (r Ref) AutoLinked() bool { return r.ID != "" && r.Source == SourceAutoLinked }

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool { return r.ID == "" }

// GuidebookModules holds a guidebook's single references (L1 storytelling,
// L2 practical info) and bulk reference sets (L3 places, L4 specials).
type GuidebookModules struct {
	CountryStorytelling Ref `json:"country_storytelling"`
	CityStorytelling    Ref `json:"city_storytelling"`
	Transport           Ref `json:"transport"`
	Finance             Ref `json:"finance"`
	Emergency           Ref `json:"emergency"`

	AttractionSpecialIDs []string `json:"attraction_special_ids,omitempty"`
	AttractionPlaceIDs   []string `json:"attraction_place_ids,omitempty"`
	CultureSpecialIDs    []string `json:"culture_special_ids,omitempty"`
	DiningPlaceIDs       []string `json:"dining_place_ids,omitempty"`
	ServiceIDs           []string `json:"service_ids,omitempty"`
	ShoppingIDs          []string `json:"shopping_ids,omitempty"`
}

// SingleRefs returns the five single module references in tier order.
func (m *GuidebookModules) SingleRefs() []Ref {
	return []Ref{m.CountryStorytelling, m.CityStorytelling, m.Transport, m.Finance, m.Emergency}
}

// ModuleCounts are the derived per-tier summary counters. They are recomputed
// on every save and never hand-edited.
type ModuleCounts struct {
	L1 int `json:"l1"`
	L2 int `json:"l2"`
	L3 int `json:"l3"`
	L4 int `json:"l4"`
}

// Total returns the sum across all tiers.
func (c ModuleCounts) Total() int { return c.L1 + c.L2 + c.L3 + c.L4 }

// Guidebook is the assembled guidebook document.
type Guidebook struct {
	ID          string           `json:"id"`
	TitleKr     string           `json:"title_kr"`
	TitleEn     string           `json:"title_en"`
	CityCode    string           `json:"city_code"`
	CountryCode string           `json:"country_code"`
	Modules     GuidebookModules `json:"modules"`
	Counts      ModuleCounts     `json:"counts"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// DistrictCategory names a per-district content category.
type DistrictCategory string

// District category constants (typed).
const (
	DistrictAttractions   DistrictCategory = "attractions"
	DistrictDining        DistrictCategory = "dining"
	DistrictShopping      DistrictCategory = "shopping"
	DistrictServices      DistrictCategory = "services"
	DistrictAccommodation DistrictCategory = "accommodation"
)

// DistrictCategories lists every district content category.
var DistrictCategories = []DistrictCategory{
	DistrictAttractions,
	DistrictDining,
	DistrictShopping,
	DistrictServices,
	DistrictAccommodation,
}

// IsValid reports whether c is a known district category.
func (c DistrictCategory) IsValid() bool {
	for _, known := range DistrictCategories {
		if c == known {
			return true
		}
	}
	return false
}

// District is a city sub-entity mapping content categories to place id sets.
// Ids are unique within a category; the same id may appear in different
// categories of the same district.
type District struct {
	ID          string                        `json:"id"`
	Name        string                        `json:"name"`
	Description string                        `json:"description,omitempty"`
	Contents    map[DistrictCategory][]string `json:"contents"`
}
