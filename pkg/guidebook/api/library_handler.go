package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tripcraft/guidebook/pkg/guidebook"
)

// LibraryHandler handles HTTP requests for the content library
type LibraryHandler struct {
	service guidebook.Service
}

// NewLibraryHandler creates a new content library handler
func NewLibraryHandler(service guidebook.Service) *LibraryHandler {
	return &LibraryHandler{service: service}
}

// Routes returns the routes for the content library
func (h *LibraryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateObject)
	r.Get("/", h.ListObjects)
	r.Get("/{id}", h.GetObject)
	r.Put("/{id}", h.UpdateObject)
	r.Delete("/{id}", h.DeleteObject)
	r.Post("/{id}/duplicate", h.DuplicateObject)

	return r
}

func (h *LibraryHandler) CreateObject(w http.ResponseWriter, r *http.Request) {
	// Decoded through the domain type so the body union follows the type tag.
	var obj guidebook.ContentObject
	if err := json.NewDecoder(r.Body).Decode(&obj); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateContentObject(r.Context(), guidebook.CreateContentObjectRequest{
		Type:     obj.Type,
		TargetID: obj.TargetID,
		Target:   obj.Target,
		Title:    obj.Title,
		Tagline:  obj.Tagline,
		Keywords: obj.Keywords,
		Body:     obj.Body,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

func (h *LibraryHandler) ListObjects(w http.ResponseWriter, r *http.Request) {
	var filter guidebook.ContentObjectFilter
	if t := r.URL.Query().Get("type"); t != "" {
		ct := guidebook.ContentType(t)
		filter.Type = &ct
	}
	filter.TargetID = r.URL.Query().Get("target_id")

	objects, err := h.service.ListContentObjects(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, objects)
}

func (h *LibraryHandler) GetObject(w http.ResponseWriter, r *http.Request) {
	obj, err := h.service.GetContentObject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, obj)
}

func (h *LibraryHandler) UpdateObject(w http.ResponseWriter, r *http.Request) {
	var obj guidebook.ContentObject
	if err := json.NewDecoder(r.Body).Decode(&obj); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	obj.ID = chi.URLParam(r, "id")

	if err := h.service.UpdateContentObject(r.Context(), &obj); err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, obj)
}

func (h *LibraryHandler) DeleteObject(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteContentObject(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *LibraryHandler) DuplicateObject(w http.ResponseWriter, r *http.Request) {
	dup, err := h.service.DuplicateContentObject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, dup)
}
