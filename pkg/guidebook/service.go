package guidebook

import (
	"context"
)

// Service defines the main interface for the guidebook content engine
type Service interface {
	// Country operations
	CreateCountry(ctx context.Context, req CreateCountryRequest) (*Country, error)
	GetCountry(ctx context.Context, id string) (*Country, error)
	ListCountries(ctx context.Context) ([]*Country, error)
	UpdateCountry(ctx context.Context, country *Country) error
	DeleteCountry(ctx context.Context, id string) error

	// Country detail operations
	SetCountryDetail(ctx context.Context, req SetCountryDetailRequest) (*CountryDetail, error)
	GetCountryDetail(ctx context.Context, countryID string) (*CountryDetail, error)

	// City operations
	CreateCityDetail(ctx context.Context, req CreateCityDetailRequest) (*CityDetail, error)
	GetCityDetail(ctx context.Context, id string) (*CityDetail, error)
	GetCityDetailByCode(ctx context.Context, cityCode string) (*CityDetail, error)
	ListCityDetails(ctx context.Context, countryID string) ([]*CityDetail, error)
	UpdateCityDetail(ctx context.Context, req UpdateCityDetailRequest) (*CityDetail, error)
	DeleteCityDetail(ctx context.Context, id string) error

	// Inheritance operations
	RefreshCityInheritance(ctx context.Context, cityID string) (*CityDetail, error)
	ToggleCityOverride(ctx context.Context, cityID string, field Field) (*CityDetail, error)
	SetCityCustomData(ctx context.Context, cityID string, field Field, value string) (*CityDetail, error)
	EffectiveCityInfo(ctx context.Context, cityID string) (map[Field]string, error)

	// District operations
	AddCityDistrict(ctx context.Context, cityID string, district District) (*CityDetail, error)
	BulkAddDistrictContent(ctx context.Context, cityID, districtID string, category DistrictCategory, candidateIDs []string) (*CityDetail, error)

	// Content library operations
	CreateContentObject(ctx context.Context, req CreateContentObjectRequest) (*ContentObject, error)
	GetContentObject(ctx context.Context, id string) (*ContentObject, error)
	UpdateContentObject(ctx context.Context, obj *ContentObject) error
	DeleteContentObject(ctx context.Context, id string) error
	DuplicateContentObject(ctx context.Context, id string) (*ContentObject, error)
	ListContentObjects(ctx context.Context, filter ContentObjectFilter) ([]*ContentObject, error)

	// Auto-link operations
	ResolveStorytelling(ctx context.Context, countryID, cityCode string) (StorytellingLinks, error)
	ResolvePracticalInfo(ctx context.Context, cityCode string) (PracticalLinks, error)
	PrefillGuidebookModules(ctx context.Context, countryID, cityCode string) (GuidebookModules, error)

	// Guidebook operations
	AssembleGuidebook(ctx context.Context, req AssembleRequest) (*Guidebook, error)
	GetGuidebook(ctx context.Context, id string) (*Guidebook, error)
	ListGuidebooks(ctx context.Context) ([]*Guidebook, error)
	DeleteGuidebook(ctx context.Context, id string) error
	BulkAddGuidebookRefs(ctx context.Context, guidebookID string, array RefArray, candidateIDs []string) (*Guidebook, error)
	MoveGuidebookRef(ctx context.Context, guidebookID string, array RefArray, from, to int) (*Guidebook, error)
	RemoveGuidebookRef(ctx context.Context, guidebookID string, array RefArray, index int) (*Guidebook, error)
}
