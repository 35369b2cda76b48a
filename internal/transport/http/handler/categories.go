package handler

import (
	"net/http"

	"github.com/go-catalog-nosql/internal/application/content"
	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-chi/chi/v5"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	svc content.CategoryService
}

func NewCategoryHandler(svc content.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "image")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	c, err := h.svc.Create(r.Context(), domain.CategoryInput{CategoryName: formString(r, "categoryName")}, img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "category created", c)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", c)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "image")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), domain.CategoryInput{CategoryName: formString(r, "categoryName")}, img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "category updated", c)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "category deleted", nil)
}
