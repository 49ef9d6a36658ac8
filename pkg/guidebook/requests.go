package guidebook

// Request/Response DTOs

// CreateCountryRequest contains parameters for registering a country
type CreateCountryRequest struct {
	NameKr    string
	NameEn    string
	ISOCode   string
	Continent string
}

// SetCountryDetailRequest contains parameters for creating or replacing a
// country's detail record (1:1 by country id)
type SetCountryDetailRequest struct {
	CountryID             string
	PracticalInfo         PracticalInfo
	Safety                Safety
	StorytellingLibraryID string
}

// CreateCityDetailRequest contains parameters for creating a city under a
// country. CountryID is required and immutable after creation; the inherited
// snapshot is taken from the parent at create time.
type CreateCityDetailRequest struct {
	CityCode  string
	NameKr    string
	NameEn    string
	CountryID string

	StorytellingLibraryID   string
	TransportationLibraryID string
	FinanceLibraryID        string
	EmergencyLibraryID      string
}

// UpdateCityDetailRequest contains the city fields an operator may edit.
// The parent country binding is not part of it.
type UpdateCityDetailRequest struct {
	ID     string
	NameKr string
	NameEn string

	StorytellingLibraryID   string
	TransportationLibraryID string
	FinanceLibraryID        string
	EmergencyLibraryID      string
}

// CreateContentObjectRequest contains parameters for creating a content
// library object. Body must match Type.
type CreateContentObjectRequest struct {
	Type     ContentType
	TargetID string
	Target   string
	Title    string
	Tagline  string
	Keywords []string
	Body     ContentBody
}

// ContentObjectFilter selects content library objects for listing.
type ContentObjectFilter struct {
	Type     *ContentType
	TargetID string
}

// RefArray names one of a guidebook's bulk reference arrays.
type RefArray string

// Bulk reference array constants.
const (
	RefArrayAttractionSpecials RefArray = "attractionSpecialIds"
	RefArrayAttractionPlaces   RefArray = "attractionPlaceIds"
	RefArrayCultureSpecials    RefArray = "cultureSpecialIds"
	RefArrayDiningPlaces       RefArray = "diningPlaceIds"
	RefArrayServices           RefArray = "serviceIds"
	RefArrayShopping           RefArray = "shoppingIds"
)

// IsValid reports whether a names a known bulk reference array.
func (a RefArray) IsValid() bool {
	switch a {
	case RefArrayAttractionSpecials, RefArrayAttractionPlaces, RefArrayCultureSpecials,
		RefArrayDiningPlaces, RefArrayServices, RefArrayShopping:
		return true
	}
	return false
}

// refs returns the array a names.
func (m *GuidebookModules) refs(a RefArray) []string {
	switch a {
	case RefArrayAttractionSpecials:
		return m.AttractionSpecialIDs
	case RefArrayAttractionPlaces:
		return m.AttractionPlaceIDs
	case RefArrayCultureSpecials:
		return m.CultureSpecialIDs
	case RefArrayDiningPlaces:
		return m.DiningPlaceIDs
	case RefArrayServices:
		return m.ServiceIDs
	case RefArrayShopping:
		return m.ShoppingIDs
	}
	return nil
}

// setRefs replaces the array a names.
func (m *GuidebookModules) setRefs(a RefArray, ids []string) {
	switch a {
	case RefArrayAttractionSpecials:
		m.AttractionSpecialIDs = ids
	case RefArrayAttractionPlaces:
		m.AttractionPlaceIDs = ids
	case RefArrayCultureSpecials:
		m.CultureSpecialIDs = ids
	case RefArrayDiningPlaces:
		m.DiningPlaceIDs = ids
	case RefArrayServices:
		m.ServiceIDs = ids
	case RefArrayShopping:
		m.ShoppingIDs = ids
	}
}
