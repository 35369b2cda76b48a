package handler

import (
	"net/http"

	"github.com/go-catalog-nosql/internal/application/content"
	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-chi/chi/v5"
)

// ContainerHandler handles container endpoints.
type ContainerHandler struct {
	svc content.ContainerService
}

func NewContainerHandler(svc content.ContainerService) *ContainerHandler {
	return &ContainerHandler{svc: svc}
}

func containerInput(r *http.Request) domain.ContainerInput {
	return domain.ContainerInput{Name: formString(r, "name"), Link: formString(r, "link")}
}

func (h *ContainerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "image")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	c, err := h.svc.Create(r.Context(), containerInput(r), img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "container created", c)
}

func (h *ContainerHandler) List(w http.ResponseWriter, r *http.Request) {
	containers, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", containers)
}

func (h *ContainerHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", c)
}

func (h *ContainerHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "image")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), containerInput(r), img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "container updated", c)
}

func (h *ContainerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "container deleted", nil)
}
