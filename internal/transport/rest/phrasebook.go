package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
	"github.com/heartmarshall/triplingo-backend/internal/service/phrasebook"
)

type phrasebookService interface {
	IsSaved(ctx context.Context, key domain.SavedPhraseKey) bool
	SaveIfNeeded(ctx context.Context, input phrasebook.SaveInput) (bool, error)
	MarkPracticed(ctx context.Context, key domain.SavedPhraseKey) error
	List(ctx context.Context, input phrasebook.ListInput) ([]domain.SavedPhrase, error)
	RecentlyPracticed(ctx context.Context, limit int) ([]domain.SavedPhrase, error)
	Delete(ctx context.Context, input phrasebook.DeleteInput) error
}

// PhrasebookHandler serves the saved-phrase endpoints.
type PhrasebookHandler struct {
	svc phrasebookService
	log *slog.Logger
}

// NewPhrasebookHandler creates a PhrasebookHandler.
func NewPhrasebookHandler(svc phrasebookService, logger *slog.Logger) *PhrasebookHandler {
	return &PhrasebookHandler{svc: svc, log: logger.With("handler", "phrasebook")}
}

type phraseKeyRequest struct {
	DestinationName string `json:"destinationName"`
	SituationTitle  string `json:"situationTitle"`
	TargetText      string `json:"targetText"`
}

func (k phraseKeyRequest) key() domain.SavedPhraseKey {
	return domain.SavedPhraseKey{
		DestinationName: k.DestinationName,
		SituationTitle:  k.SituationTitle,
		TargetText:      k.TargetText,
	}
}

type savePhraseRequest struct {
	phraseKeyRequest
	EnglishMeaning string `json:"englishMeaning"`
}

type savedPhraseResponse struct {
	ID              string     `json:"id"`
	TargetText      string     `json:"targetText"`
	EnglishMeaning  string     `json:"englishMeaning"`
	DestinationName string     `json:"destinationName"`
	SituationTitle  string     `json:"situationTitle"`
	LastPracticedAt *time.Time `json:"lastPracticedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// List handles GET /phrasebook?search=&practiced=&limit=.
func (h *PhrasebookHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	practiced, err := queryBool(r, "practiced")
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	phrases, err := h.svc.List(r.Context(), phrasebook.ListInput{
		Search:        r.URL.Query().Get("search"),
		PracticedOnly: practiced,
		Limit:         limit,
	})
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSavedPhraseResponses(phrases))
}

// Recent handles GET /phrasebook/recent?limit=.
func (h *PhrasebookHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	phrases, err := h.svc.RecentlyPracticed(r.Context(), limit)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSavedPhraseResponses(phrases))
}

// Status handles GET /phrasebook/status?destination=&situation=&target=.
func (h *PhrasebookHandler) Status(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := domain.SavedPhraseKey{
		DestinationName: q.Get("destination"),
		SituationTitle:  q.Get("situation"),
		TargetText:      q.Get("target"),
	}
	if err := phrasebook.ValidateKey(key); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": h.svc.IsSaved(r.Context(), key)})
}

// Save handles POST /phrasebook. Responds 201 when a row was created and
// 200 when an existing one was refreshed.
func (h *PhrasebookHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req savePhraseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	created, err := h.svc.SaveIfNeeded(r.Context(), phrasebook.SaveInput{
		TargetText:      req.TargetText,
		EnglishMeaning:  req.EnglishMeaning,
		DestinationName: req.DestinationName,
		SituationTitle:  req.SituationTitle,
	})
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]bool{"created": created})
}

// Practice handles POST /phrasebook/practice.
func (h *PhrasebookHandler) Practice(w http.ResponseWriter, r *http.Request) {
	var req phraseKeyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	if err := h.svc.MarkPracticed(r.Context(), req.key()); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /phrasebook/{id}.
func (h *PhrasebookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), phrasebook.DeleteInput{ID: id}); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toSavedPhraseResponses(phrases []domain.SavedPhrase) []savedPhraseResponse {
	resp := make([]savedPhraseResponse, len(phrases))
	for i, sp := range phrases {
		resp[i] = savedPhraseResponse{
			ID:              sp.ID.String(),
			TargetText:      sp.TargetText,
			EnglishMeaning:  sp.EnglishMeaning,
			DestinationName: sp.DestinationName,
			SituationTitle:  sp.SituationTitle,
			LastPracticedAt: sp.LastPracticedAt,
			CreatedAt:       sp.CreatedAt,
		}
	}
	return resp
}
