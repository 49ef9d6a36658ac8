package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tripcraft/guidebook/pkg/guidebook"
)

// CityHandler handles HTTP requests for city details, inheritance, and
// district content
type CityHandler struct {
	service guidebook.Service
}

// NewCityHandler creates a new city handler
func NewCityHandler(service guidebook.Service) *CityHandler {
	return &CityHandler{service: service}
}

// Routes returns the routes for cities
func (h *CityHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateCity)
	r.Get("/", h.ListCities)
	r.Get("/{id}", h.GetCity)
	r.Put("/{id}", h.UpdateCity)
	r.Delete("/{id}", h.DeleteCity)

	r.Get("/{id}/effective", h.EffectiveInfo)
	r.Post("/{id}/refresh-inheritance", h.RefreshInheritance)
	r.Post("/{id}/overrides/{field}/toggle", h.ToggleOverride)
	r.Put("/{id}/custom-data/{field}", h.SetCustomData)

	r.Post("/{id}/districts", h.AddDistrict)
	r.Post("/{id}/districts/{districtId}/{category}/bulk-add", h.BulkAddDistrictContent)

	return r
}

// CreateCityRequest is the request body for creating a city
type CreateCityRequest struct {
	CityCode  string `json:"city_code"`
	NameKr    string `json:"name_kr"`
	NameEn    string `json:"name_en"`
	CountryID string `json:"country_id"`

	StorytellingLibraryID   string `json:"storytelling_library_id"`
	TransportationLibraryID string `json:"transportation_library_id"`
	FinanceLibraryID        string `json:"finance_library_id"`
	EmergencyLibraryID      string `json:"emergency_library_id"`
}

func (h *CityHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req CreateCityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	city, err := h.service.CreateCityDetail(r.Context(), guidebook.CreateCityDetailRequest{
		CityCode:                req.CityCode,
		NameKr:                  req.NameKr,
		NameEn:                  req.NameEn,
		CountryID:               req.CountryID,
		StorytellingLibraryID:   req.StorytellingLibraryID,
		TransportationLibraryID: req.TransportationLibraryID,
		FinanceLibraryID:        req.FinanceLibraryID,
		EmergencyLibraryID:      req.EmergencyLibraryID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, city)
}

func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	// Optional lookup by code, otherwise list (optionally by country).
	if code := r.URL.Query().Get("code"); code != "" {
		city, err := h.service.GetCityDetailByCode(r.Context(), code)
		if err != nil {
			writeError(w, r, err)
			return
		}
		render.JSON(w, r, city)
		return
	}

	cities, err := h.service.ListCityDetails(r.Context(), r.URL.Query().Get("country_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, cities)
}

func (h *CityHandler) GetCity(w http.ResponseWriter, r *http.Request) {
	city, err := h.service.GetCityDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, city)
}

// UpdateCityRequest is the request body for editing a city. The parent
// country binding is immutable and not part of it.
type UpdateCityRequest struct {
	NameKr string `json:"name_kr"`
	NameEn string `json:"name_en"`

	StorytellingLibraryID   string `json:"storytelling_library_id"`
	TransportationLibraryID string `json:"transportation_library_id"`
	FinanceLibraryID        string `json:"finance_library_id"`
	EmergencyLibraryID      string `json:"emergency_library_id"`
}

func (h *CityHandler) UpdateCity(w http.ResponseWriter, r *http.Request) {
	var req UpdateCityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	city, err := h.service.UpdateCityDetail(r.Context(), guidebook.UpdateCityDetailRequest{
		ID:                      chi.URLParam(r, "id"),
		NameKr:                  req.NameKr,
		NameEn:                  req.NameEn,
		StorytellingLibraryID:   req.StorytellingLibraryID,
		TransportationLibraryID: req.TransportationLibraryID,
		FinanceLibraryID:        req.FinanceLibraryID,
		EmergencyLibraryID:      req.EmergencyLibraryID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, city)
}

func (h *CityHandler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCityDetail(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *CityHandler) EffectiveInfo(w http.ResponseWriter, r *http.Request) {
	effective, err := h.service.EffectiveCityInfo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, effective)
}

func (h *CityHandler) RefreshInheritance(w http.ResponseWriter, r *http.Request) {
	city, err := h.service.RefreshCityInheritance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, city)
}

func (h *CityHandler) ToggleOverride(w http.ResponseWriter, r *http.Request) {
	city, err := h.service.ToggleCityOverride(r.Context(),
		chi.URLParam(r, "id"), guidebook.Field(chi.URLParam(r, "field")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, city)
}

// SetCustomDataRequest is the request body for a pre-staged override value
type SetCustomDataRequest struct {
	Value string `json:"value"`
}

func (h *CityHandler) SetCustomData(w http.ResponseWriter, r *http.Request) {
	var req SetCustomDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	city, err := h.service.SetCityCustomData(r.Context(),
		chi.URLParam(r, "id"), guidebook.Field(chi.URLParam(r, "field")), req.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, city)
}

func (h *CityHandler) AddDistrict(w http.ResponseWriter, r *http.Request) {
	var district guidebook.District
	if err := json.NewDecoder(r.Body).Decode(&district); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	city, err := h.service.AddCityDistrict(r.Context(), chi.URLParam(r, "id"), district)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, city)
}

// BulkAddRequest is the request body for merging candidate ids into a set
type BulkAddRequest struct {
	IDs []string `json:"ids"`
}

func (h *CityHandler) BulkAddDistrictContent(w http.ResponseWriter, r *http.Request) {
	var req BulkAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	city, err := h.service.BulkAddDistrictContent(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "districtId"),
		guidebook.DistrictCategory(chi.URLParam(r, "category")), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, city)
}
