package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tripcraft/guidebook/pkg/guidebook"
)

// GuidebookHandler handles HTTP requests for guidebook assembly
type GuidebookHandler struct {
	service guidebook.Service
}

// NewGuidebookHandler creates a new guidebook handler
func NewGuidebookHandler(service guidebook.Service) *GuidebookHandler {
	return &GuidebookHandler{service: service}
}

// Routes returns the routes for guidebooks
func (h *GuidebookHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Assemble)
	r.Get("/", h.ListGuidebooks)
	r.Get("/prefill", h.Prefill)
	r.Get("/{id}", h.GetGuidebook)
	r.Put("/{id}", h.Assemble)
	r.Delete("/{id}", h.DeleteGuidebook)

	r.Post("/{id}/refs/{array}/bulk-add", h.BulkAddRefs)
	r.Post("/{id}/refs/{array}/move", h.MoveRef)
	r.Post("/{id}/refs/{array}/remove", h.RemoveRef)

	return r
}

// AssembleRequest is the request body for assembling a guidebook. Counts in
// the body are ignored; they are recomputed on every save.
type AssembleRequest struct {
	TitleKr     string                     `json:"title_kr"`
	TitleEn     string                     `json:"title_en"`
	CityCode    string                     `json:"city_code"`
	CountryCode string                     `json:"country_code"`
	Modules     guidebook.GuidebookModules `json:"modules"`
}

func (h *GuidebookHandler) Assemble(w http.ResponseWriter, r *http.Request) {
	var req AssembleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	gb, err := h.service.AssembleGuidebook(r.Context(), guidebook.AssembleRequest{
		ID:          id,
		TitleKr:     req.TitleKr,
		TitleEn:     req.TitleEn,
		CityCode:    req.CityCode,
		CountryCode: req.CountryCode,
		Modules:     req.Modules,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if id == "" {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, gb)
}

// Prefill resolves the auto-linked module set for a country/city selection.
func (h *GuidebookHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	modules, err := h.service.PrefillGuidebookModules(r.Context(),
		r.URL.Query().Get("country_id"), r.URL.Query().Get("city_code"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, modules)
}

func (h *GuidebookHandler) ListGuidebooks(w http.ResponseWriter, r *http.Request) {
	guidebooks, err := h.service.ListGuidebooks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, guidebooks)
}

func (h *GuidebookHandler) GetGuidebook(w http.ResponseWriter, r *http.Request) {
	gb, err := h.service.GetGuidebook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, gb)
}

func (h *GuidebookHandler) DeleteGuidebook(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGuidebook(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *GuidebookHandler) BulkAddRefs(w http.ResponseWriter, r *http.Request) {
	var req BulkAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	gb, err := h.service.BulkAddGuidebookRefs(r.Context(),
		chi.URLParam(r, "id"), guidebook.RefArray(chi.URLParam(r, "array")), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, gb)
}

// MoveRefRequest is the request body for reordering a bulk reference
type MoveRefRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (h *GuidebookHandler) MoveRef(w http.ResponseWriter, r *http.Request) {
	var req MoveRefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	gb, err := h.service.MoveGuidebookRef(r.Context(),
		chi.URLParam(r, "id"), guidebook.RefArray(chi.URLParam(r, "array")), req.From, req.To)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, gb)
}

// RemoveRefRequest is the request body for removing a bulk reference by index
type RemoveRefRequest struct {
	Index int `json:"index"`
}

func (h *GuidebookHandler) RemoveRef(w http.ResponseWriter, r *http.Request) {
	var req RemoveRefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	gb, err := h.service.RemoveGuidebookRef(r.Context(),
		chi.URLParam(r, "id"), guidebook.RefArray(chi.URLParam(r, "array")), req.Index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, gb)
}
