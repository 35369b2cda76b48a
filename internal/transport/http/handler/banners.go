package handler

import (
	"net/http"

	"github.com/go-catalog-nosql/internal/application/content"
	"github.com/go-chi/chi/v5"
)

// BannerHandler handles banner endpoints.
type BannerHandler struct {
	svc content.BannerService
}

func NewBannerHandler(svc content.BannerService) *BannerHandler { return &BannerHandler{svc: svc} }

func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "bannerImage")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	b, err := h.svc.Create(r.Context(), img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "banner created", b)
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	banners, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", banners)
}

func (h *BannerHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", b)
}

func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "bannerImage")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	b, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "banner updated", b)
}

func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "banner deleted", nil)
}
