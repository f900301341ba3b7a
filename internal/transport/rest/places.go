package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
	"github.com/heartmarshall/triplingo-backend/internal/service/places"
)

type placeService interface {
	Save(ctx context.Context, input places.SaveInput) (*domain.SavedPlace, error)
	List(ctx context.Context) ([]domain.SavedPlace, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlaceHandler serves the saved-place endpoints.
type PlaceHandler struct {
	svc placeService
	log *slog.Logger
}

// NewPlaceHandler creates a PlaceHandler.
func NewPlaceHandler(svc placeService, logger *slog.Logger) *PlaceHandler {
	return &PlaceHandler{svc: svc, log: logger.With("handler", "places")}
}

type savePlaceRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type placeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"createdAt"`
}

// List handles GET /places.
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	resp := make([]placeResponse, len(list))
	for i, p := range list {
		resp[i] = toPlaceResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Save handles POST /places.
func (h *PlaceHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req savePlaceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	place, err := h.svc.Save(r.Context(), places.SaveInput{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlaceResponse(*place))
}

// Delete handles DELETE /places/{id}.
func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toPlaceResponse(p domain.SavedPlace) placeResponse {
	return placeResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		CreatedAt: p.CreatedAt,
	}
}
