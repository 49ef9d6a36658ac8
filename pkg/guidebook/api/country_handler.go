package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tripcraft/guidebook/pkg/guidebook"
)

// CountryHandler handles HTTP requests for countries and country details
type CountryHandler struct {
	service guidebook.Service
}

// NewCountryHandler creates a new country handler
func NewCountryHandler(service guidebook.Service) *CountryHandler {
	return &CountryHandler{service: service}
}

// Routes returns the routes for countries
func (h *CountryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateCountry)
	r.Get("/", h.ListCountries)
	r.Get("/{id}", h.GetCountry)
	r.Put("/{id}", h.UpdateCountry)
	r.Delete("/{id}", h.DeleteCountry)

	r.Put("/{id}/detail", h.SetCountryDetail)
	r.Get("/{id}/detail", h.GetCountryDetail)

	return r
}

// CreateCountryRequest is the request body for registering a country
type CreateCountryRequest struct {
	NameKr    string `json:"name_kr"`
	NameEn    string `json:"name_en"`
	ISOCode   string `json:"iso_code"`
	Continent string `json:"continent"`
}

func (h *CountryHandler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	var req CreateCountryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	country, err := h.service.CreateCountry(r.Context(), guidebook.CreateCountryRequest{
		NameKr:    req.NameKr,
		NameEn:    req.NameEn,
		ISOCode:   req.ISOCode,
		Continent: req.Continent,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, country)
}

func (h *CountryHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.service.ListCountries(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, countries)
}

func (h *CountryHandler) GetCountry(w http.ResponseWriter, r *http.Request) {
	country, err := h.service.GetCountry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, country)
}

func (h *CountryHandler) UpdateCountry(w http.ResponseWriter, r *http.Request) {
	var country guidebook.Country
	if err := json.NewDecoder(r.Body).Decode(&country); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	country.ID = chi.URLParam(r, "id")

	if err := h.service.UpdateCountry(r.Context(), &country); err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, country)
}

func (h *CountryHandler) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCountry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// SetCountryDetailRequest is the request body for the country detail record
type SetCountryDetailRequest struct {
	PracticalInfo         guidebook.PracticalInfo `json:"practical_info"`
	Safety                guidebook.Safety        `json:"safety"`
	StorytellingLibraryID string                  `json:"storytelling_library_id"`
}

func (h *CountryHandler) SetCountryDetail(w http.ResponseWriter, r *http.Request) {
	var req SetCountryDetailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	detail, err := h.service.SetCountryDetail(r.Context(), guidebook.SetCountryDetailRequest{
		CountryID:             chi.URLParam(r, "id"),
		PracticalInfo:         req.PracticalInfo,
		Safety:                req.Safety,
		StorytellingLibraryID: req.StorytellingLibraryID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, detail)
}

func (h *CountryHandler) GetCountryDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetCountryDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, detail)
}
