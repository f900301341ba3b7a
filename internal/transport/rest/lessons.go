package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
	"github.com/heartmarshall/triplingo-backend/internal/transport/dataloader"
)

type lessonService interface {
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	ListSituations(ctx context.Context, tripID uuid.UUID) ([]domain.Situation, error)
	ListPhrases(ctx context.Context, situationID uuid.UUID) ([]domain.Phrase, error)
}

// LessonHandler serves the read-only lesson endpoints.
type LessonHandler struct {
	svc lessonService
	log *slog.Logger
}

// NewLessonHandler creates a LessonHandler.
func NewLessonHandler(svc lessonService, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{svc: svc, log: logger.With("handler", "lessons")}
}

type tripResponse struct {
	ID              string              `json:"id"`
	DestinationName string              `json:"destinationName"`
	BaseLanguage    string              `json:"baseLanguage"`
	TargetLanguage  string              `json:"targetLanguage"`
	CreatedAt       time.Time           `json:"createdAt"`
	Situations      []situationResponse `json:"situations,omitempty"`
}

type situationResponse struct {
	ID        string `json:"id"`
	TripID    string `json:"tripId"`
	Title     string `json:"title"`
	SortOrder int    `json:"sortOrder"`
}

type phraseResponse struct {
	ID             string   `json:"id"`
	SituationID    string   `json:"situationId"`
	TargetText     string   `json:"targetText"`
	EnglishMeaning string   `json:"englishMeaning"`
	Notes          *string  `json:"notes,omitempty"`
	Tags           []string `json:"tags"`
}

// ListTrips handles GET /trips. With ?expand=situations every trip carries
// its situations, loaded in one batch.
func (h *LessonHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.svc.ListTrips(r.Context())
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	resp := make([]tripResponse, len(trips))
	for i, t := range trips {
		resp[i] = toTripResponse(t)
	}

	if r.URL.Query().Get("expand") == "situations" && len(trips) > 0 {
		ids := make([]uuid.UUID, len(trips))
		for i, t := range trips {
			ids[i] = t.ID
		}
		byTrip, err := dataloader.FromContext(r.Context()).LoadSituations(r.Context(), ids)
		if err != nil {
			writeServiceError(h.log, w, r, err)
			return
		}
		for i := range resp {
			resp[i].Situations = toSituationResponses(byTrip[trips[i].ID])
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListSituations handles GET /trips/{id}/situations.
func (h *LessonHandler) ListSituations(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	situations, err := h.svc.ListSituations(r.Context(), tripID)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSituationResponses(situations))
}

// ListPhrases handles GET /situations/{id}/phrases.
func (h *LessonHandler) ListPhrases(w http.ResponseWriter, r *http.Request) {
	situationID, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	phrases, err := h.svc.ListPhrases(r.Context(), situationID)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	resp := make([]phraseResponse, len(phrases))
	for i, p := range phrases {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		resp[i] = phraseResponse{
			ID:             p.ID.String(),
			SituationID:    p.SituationID.String(),
			TargetText:     p.TargetText,
			EnglishMeaning: p.EnglishMeaning,
			Notes:          p.Notes,
			Tags:           tags,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func toTripResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:              t.ID.String(),
		DestinationName: t.DestinationName,
		BaseLanguage:    t.BaseLanguage,
		TargetLanguage:  t.TargetLanguage,
		CreatedAt:       t.CreatedAt,
	}
}

func toSituationResponses(situations []domain.Situation) []situationResponse {
	resp := make([]situationResponse, len(situations))
	for i, s := range situations {
		resp[i] = situationResponse{
			ID:        s.ID.String(),
			TripID:    s.TripID.String(),
			Title:     s.Title,
			SortOrder: s.SortOrder,
		}
	}
	return resp
}
