package handler

import (
	"net/http"

	"github.com/go-catalog-nosql/internal/application/content"
	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-chi/chi/v5"
)

// LogoHandler handles logo endpoints.
type LogoHandler struct {
	svc content.LogoService
}

func NewLogoHandler(svc content.LogoService) *LogoHandler { return &LogoHandler{svc: svc} }

func logoInput(r *http.Request) domain.LogoInput {
	return domain.LogoInput{
		CategoryName: formString(r, "categoryName"),
		LogoName:     formString(r, "logoName"),
	}
}

func (h *LogoHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "logoImage")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	l, err := h.svc.Create(r.Context(), logoInput(r), img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "logo created", l)
}

func (h *LogoHandler) List(w http.ResponseWriter, r *http.Request) {
	logos, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", logos)
}

func (h *LogoHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", l)
}

func (h *LogoHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "logoImage")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	l, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), logoInput(r), img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "logo updated", l)
}

func (h *LogoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "logo deleted", nil)
}
