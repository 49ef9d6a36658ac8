package guidebook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripcraft/guidebook/pkg/guidebook/docstore"
)

// service implements the Service interface
type service struct {
	store     docstore.Store
	events    EventSink
	now       func() time.Time
	resolver  *InheritanceResolver
	linker    *AutoLinker
	assembler *ModuleAssembler
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithDocumentStore sets the document store for the service
func WithDocumentStore(store docstore.Store) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.events = sink
	}
}

// WithClock sets the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		now: time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.store == nil {
		return nil, fmt.Errorf("document store is required")
	}

	s.resolver = NewInheritanceResolver(s.store)
	s.linker = NewAutoLinker(s.store)
	s.assembler = NewModuleAssembler(s.store)
	s.assembler.now = s.now

	return s, nil
}

func (s *service) fireContentObjectCreated(ctx context.Context, obj *ContentObject) {
	if s.events != nil {
		_ = s.events.ContentObjectCreated(ctx, obj)
	}
}

func (s *service) fireContentObjectUpdated(ctx context.Context, obj *ContentObject) {
	if s.events != nil {
		_ = s.events.ContentObjectUpdated(ctx, obj)
	}
}

func (s *service) fireContentObjectDeleted(ctx context.Context, id string) {
	if s.events != nil {
		_ = s.events.ContentObjectDeleted(ctx, id)
	}
}

func (s *service) fireGuidebookAssembled(ctx context.Context, gb *Guidebook) {
	if s.events != nil {
		_ = s.events.GuidebookAssembled(ctx, gb)
	}
}

// Country operations

func (s *service) CreateCountry(ctx context.Context, req CreateCountryRequest) (*Country, error) {
	now := s.now().UTC()
	country := &Country{
		NameKr:    req.NameKr,
		NameEn:    req.NameEn,
		ISOCode:   req.ISOCode,
		Continent: req.Continent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc, err := toDocument(country)
	if err != nil {
		return nil, err
	}
	id, err := s.store.Create(ctx, docstore.CollectionCountries, doc)
	if err != nil {
		return nil, fmt.Errorf("create country: %w", err)
	}
	country.ID = id
	return country, nil
}

func (s *service) GetCountry(ctx context.Context, id string) (*Country, error) {
	doc, err := s.store.GetByID(ctx, docstore.CollectionCountries, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("get country %s: %w", id, err)
	}
	var country Country
	if err := fromDocument(doc, &country); err != nil {
		return nil, err
	}
	return &country, nil
}

func (s *service) ListCountries(ctx context.Context) ([]*Country, error) {
	docs, err := s.store.Query(ctx, docstore.CollectionCountries)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	result := make([]*Country, 0, len(docs))
	for _, doc := range docs {
		var country Country
		if err := fromDocument(doc, &country); err != nil {
			return nil, err
		}
		result = append(result, &country)
	}
	return result, nil
}

func (s *service) UpdateCountry(ctx context.Context, country *Country) error {
	country.UpdatedAt = s.now().UTC()
	doc, err := toDocument(country)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, docstore.CollectionCountries, country.ID, doc); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrCountryNotFound
		}
		return fmt.Errorf("update country %s: %w", country.ID, err)
	}
	return nil
}

func (s *service) DeleteCountry(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, docstore.CollectionCountries, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrCountryNotFound
		}
		return fmt.Errorf("delete country %s: %w", id, err)
	}
	// The detail record shares the country's lifetime.
	if err := s.store.Delete(ctx, docstore.CollectionCountryDetails, id); err != nil && !errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("delete country detail %s: %w", id, err)
	}
	return nil
}

// Country detail operations

func (s *service) SetCountryDetail(ctx context.Context, req SetCountryDetailRequest) (*CountryDetail, error) {
	if req.CountryID == "" {
		return nil, &ValidationError{Fields: []string{"countryId"}}
	}

	now := s.now().UTC()
	detail := &CountryDetail{
		CountryID:             req.CountryID,
		PracticalInfo:         req.PracticalInfo,
		Safety:                req.Safety,
		StorytellingLibraryID: req.StorytellingLibraryID,
		UpdatedAt:             now,
	}

	doc, err := toDocument(detail)
	if err != nil {
		return nil, err
	}
	// Keyed 1:1 by country id: replace when present, create otherwise.
	doc["id"] = req.CountryID
	err = s.store.Update(ctx, docstore.CollectionCountryDetails, req.CountryID, doc)
	if errors.Is(err, docstore.ErrNotFound) {
		detail.CreatedAt = now
		_, err = s.store.Create(ctx, docstore.CollectionCountryDetails, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("set country detail %s: %w", req.CountryID, err)
	}
	return detail, nil
}

func (s *service) GetCountryDetail(ctx context.Context, countryID string) (*CountryDetail, error) {
	doc, err := s.store.GetByID(ctx, docstore.CollectionCountryDetails, countryID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrCountryDetailNotFound
		}
		return nil, fmt.Errorf("get country detail %s: %w", countryID, err)
	}
	var detail CountryDetail
	if err := fromDocument(doc, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// City operations

func (s *service) CreateCityDetail(ctx context.Context, req CreateCityDetailRequest) (*CityDetail, error) {
	var missing []string
	if req.CityCode == "" {
		missing = append(missing, "cityCode")
	}
	if req.CountryID == "" {
		missing = append(missing, "countryId")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	inherited, err := s.resolver.RefreshInheritance(ctx, req.CountryID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	city := &CityDetail{
		CityCode:                req.CityCode,
		NameKr:                  req.NameKr,
		NameEn:                  req.NameEn,
		CountryID:               req.CountryID,
		InheritedData:           inherited,
		Overrides:               Overrides{},
		CustomData:              CustomData{},
		StorytellingLibraryID:   req.StorytellingLibraryID,
		TransportationLibraryID: req.TransportationLibraryID,
		FinanceLibraryID:        req.FinanceLibraryID,
		EmergencyLibraryID:      req.EmergencyLibraryID,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	doc, err := toDocument(city)
	if err != nil {
		return nil, err
	}
	id, err := s.store.Create(ctx, docstore.CollectionCityDetails, doc)
	if err != nil {
		return nil, fmt.Errorf("create city %s: %w", req.CityCode, err)
	}
	city.ID = id
	return city, nil
}

func (s *service) GetCityDetail(ctx context.Context, id string) (*CityDetail, error) {
	doc, err := s.store.GetByID(ctx, docstore.CollectionCityDetails, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("get city %s: %w", id, err)
	}
	var city CityDetail
	if err := fromDocument(doc, &city); err != nil {
		return nil, err
	}
	return &city, nil
}

func (s *service) GetCityDetailByCode(ctx context.Context, cityCode string) (*CityDetail, error) {
	city, err := s.linker.fetchCityByCode(ctx, cityCode)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrCityNotFound
	}
	return city, nil
}

func (s *service) ListCityDetails(ctx context.Context, countryID string) ([]*CityDetail, error) {
	var where []docstore.Where
	if countryID != "" {
		where = append(where, docstore.Eq("country_id", countryID))
	}
	docs, err := s.store.Query(ctx, docstore.CollectionCityDetails, where...)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	result := make([]*CityDetail, 0, len(docs))
	for _, doc := range docs {
		var city CityDetail
		if err := fromDocument(doc, &city); err != nil {
			return nil, err
		}
		result = append(result, &city)
	}
	return result, nil
}

func (s *service) UpdateCityDetail(ctx context.Context, req UpdateCityDetailRequest) (*CityDetail, error) {
	city, err := s.GetCityDetail(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	city.NameKr = req.NameKr
	city.NameEn = req.NameEn
	city.StorytellingLibraryID = req.StorytellingLibraryID
	city.TransportationLibraryID = req.TransportationLibraryID
	city.FinanceLibraryID = req.FinanceLibraryID
	city.EmergencyLibraryID = req.EmergencyLibraryID

	if err := s.saveCity(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *service) DeleteCityDetail(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, docstore.CollectionCityDetails, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrCityNotFound
		}
		return fmt.Errorf("delete city %s: %w", id, err)
	}
	return nil
}

func (s *service) saveCity(ctx context.Context, city *CityDetail) error {
	city.UpdatedAt = s.now().UTC()
	doc, err := toDocument(city)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, docstore.CollectionCityDetails, city.ID, doc); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrCityNotFound
		}
		return fmt.Errorf("update city %s: %w", city.ID, err)
	}
	return nil
}

// Inheritance operations

func (s *service) RefreshCityInheritance(ctx context.Context, cityID string) (*CityDetail, error) {
	city, err := s.GetCityDetail(ctx, cityID)
	if err != nil {
		return nil, err
	}
	inherited, err := s.resolver.RefreshInheritance(ctx, city.CountryID)
	if err != nil {
		return nil, err
	}
	city.InheritedData = inherited
	if err := s.saveCity(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *service) ToggleCityOverride(ctx context.Context, cityID string, field Field) (*CityDetail, error) {
	if !field.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	city, err := s.GetCityDetail(ctx, cityID)
	if err != nil {
		return nil, err
	}
	city.ToggleOverride(field)
	if err := s.saveCity(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *service) SetCityCustomData(ctx context.Context, cityID string, field Field, value string) (*CityDetail, error) {
	if !field.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	city, err := s.GetCityDetail(ctx, cityID)
	if err != nil {
		return nil, err
	}
	// Pre-staged: stored regardless of the override flag, so the value is
	// ready when the operator flips the toggle.
	if city.CustomData == nil {
		city.CustomData = CustomData{}
	}
	city.CustomData[field] = value
	if err := s.saveCity(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *service) EffectiveCityInfo(ctx context.Context, cityID string) (map[Field]string, error) {
	city, err := s.GetCityDetail(ctx, cityID)
	if err != nil {
		return nil, err
	}
	effective := make(map[Field]string, len(InheritableFields))
	for _, f := range InheritableFields {
		effective[f] = city.Effective(f)
	}
	return effective, nil
}

// District operations

func (s *service) AddCityDistrict(ctx context.Context, cityID string, district District) (*CityDetail, error) {
	city, err := s.GetCityDetail(ctx, cityID)
	if err != nil {
		return nil, err
	}
	if district.ID == "" {
		district.ID = uuid.NewString()
	}
	if district.Contents == nil {
		district.Contents = make(map[DistrictCategory][]string)
	}
	city.Districts = append(city.Districts, district)
	if err := s.saveCity(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *service) BulkAddDistrictContent(ctx context.Context, cityID, districtID string, category DistrictCategory, candidateIDs []string) (*CityDetail, error) {
	city, err := s.GetCityDetail(ctx, cityID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range city.Districts {
		if city.Districts[i].ID == districtID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrDistrictNotFound, districtID)
	}
	updated, err := BulkAddToDistrictCategory(city.Districts[idx], category, candidateIDs)
	if err != nil {
		return nil, err
	}
	city.Districts[idx] = updated
	if err := s.saveCity(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}
