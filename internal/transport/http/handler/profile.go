package handler

import (
	"net/http"

	"github.com/go-catalog-nosql/internal/application/user"
	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-chi/chi/v5"
)

// ProfileHandler handles profile, address and location endpoints.
type ProfileHandler struct {
	svc user.Service
}

func NewProfileHandler(svc user.Service) *ProfileHandler { return &ProfileHandler{svc: svc} }

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", u)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.svc.Update(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "profile updated", u)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "userId")); err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "profile deleted", nil)
}

func (h *ProfileHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var addr domain.Address
	if !decodeJSON(w, r, &addr) {
		return
	}
	a, err := h.svc.AddAddress(r.Context(), chi.URLParam(r, "userId"), addr)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "address added", a)
}

func (h *ProfileHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetAddress(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", a)
}

func (h *ProfileHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var addr domain.Address
	if !decodeJSON(w, r, &addr) {
		return
	}
	a, err := h.svc.UpdateAddress(r.Context(), chi.URLParam(r, "userId"), addr)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "address updated", a)
}

func (h *ProfileHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAddress(r.Context(), chi.URLParam(r, "userId")); err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "address deleted", nil)
}

func (h *ProfileHandler) AddLocation(w http.ResponseWriter, r *http.Request) {
	var req domain.LocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	loc, err := h.svc.AddLocation(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "location saved", loc)
}

func (h *ProfileHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req domain.LocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	loc, err := h.svc.UpdateLocation(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "location updated", loc)
}

func (h *ProfileHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := h.svc.GetLocation(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", loc)
}
