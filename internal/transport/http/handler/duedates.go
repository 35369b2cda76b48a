package handler

import (
	"net/http"
	"strconv"

	"github.com/go-catalog-nosql/internal/application/content"
	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-chi/chi/v5"
)

// DueDateHandler handles due-date promo endpoints.
type DueDateHandler struct {
	svc content.DueDateService
}

func NewDueDateHandler(svc content.DueDateService) *DueDateHandler {
	return &DueDateHandler{svc: svc}
}

func dueDateInput(r *http.Request) domain.DueDateInput {
	return domain.DueDateInput{Title: formString(r, "title"), DueDate: formString(r, "dueDate")}
}

func (h *DueDateHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "image")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	d, err := h.svc.Create(r.Context(), dueDateInput(r), img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "due date created", d)
}

// List honours ?active=true to hide promos that are already due.
func (h *DueDateHandler) List(w http.ResponseWriter, r *http.Request) {
	active, _ := strconv.ParseBool(r.URL.Query().Get("active"))
	dueDates, err := h.svc.List(r.Context(), active)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", dueDates)
}

func (h *DueDateHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", d)
}

func (h *DueDateHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "image")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	d, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), dueDateInput(r), img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "due date updated", d)
}

func (h *DueDateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "due date deleted", nil)
}
