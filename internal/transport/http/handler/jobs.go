package handler

import (
	"fmt"
	"net/http"

	"github.com/go-catalog-nosql/internal/application/content"
	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-chi/chi/v5"
)

// JobHandler handles job posting endpoints.
type JobHandler struct {
	svc content.JobService
}

func NewJobHandler(svc content.JobService) *JobHandler { return &JobHandler{svc: svc} }

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "image")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	in := domain.JobInput{
		CompanyName:  formString(r, "companyName"),
		Role:         formString(r, "role"),
		LocationName: formString(r, "locationName"),
	}
	if in.Latitude, err = formFloat(r, "latitude"); err != nil {
		httpError(w, err)
		return
	}
	if in.Longitude, err = formFloat(r, "longitude"); err != nil {
		httpError(w, err)
		return
	}
	j, err := h.svc.Create(r.Context(), in, img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "job created", j)
}

// List returns every job, or with ?lat=&lng= only those within radius_km.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	near, err := nearbyQuery(r)
	if err != nil {
		httpError(w, err)
		return
	}
	jobs, err := h.svc.List(r.Context(), near)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", jobs)
}

func nearbyQuery(r *http.Request) (*domain.NearbyQuery, error) {
	q := r.URL.Query()
	lat, err := parseFloat("lat", q.Get("lat"))
	if err != nil {
		return nil, err
	}
	lng, err := parseFloat("lng", q.Get("lng"))
	if err != nil {
		return nil, err
	}
	radius, err := parseFloat("radius_km", q.Get("radius_km"))
	if err != nil {
		return nil, err
	}
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, fmt.Errorf("lat and lng must be given together: %w", domain.ErrBadRequest)
	}
	near := &domain.NearbyQuery{Latitude: *lat, Longitude: *lng}
	if radius != nil {
		near.RadiusKm = *radius
	}
	return near, nil
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	j, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "", j)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	img, release, err := formImage(r, "image")
	defer release()
	if err != nil {
		httpError(w, err)
		return
	}
	in := domain.JobUpdate{
		CompanyName:  formStringPtr(r, "companyName"),
		Role:         formStringPtr(r, "role"),
		LocationName: formStringPtr(r, "locationName"),
	}
	if in.Latitude, err = formFloat(r, "latitude"); err != nil {
		httpError(w, err)
		return
	}
	if in.Longitude, err = formFloat(r, "longitude"); err != nil {
		httpError(w, err)
		return
	}
	j, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in, img)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "job updated", j)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "job deleted", nil)
}
