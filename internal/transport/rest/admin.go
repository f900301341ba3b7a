package rest

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sort"

	"github.com/heartmarshall/triplingo-backend/internal/app/seeder"
	"github.com/heartmarshall/triplingo-backend/internal/domain"
	"github.com/heartmarshall/triplingo-backend/internal/service/reset"
)

type seedLauncher interface {
	EnsureSeeded(ctx context.Context, names []string) (*seeder.LaunchReport, error)
	Reimport(ctx context.Context, names []string) (*seeder.LaunchReport, error)
}

type seedCatalog interface {
	Names() []string
}

type resetService interface {
	Reset(ctx context.Context, input reset.Input) error
}

// AdminHandler serves seed import and reset endpoints.
type AdminHandler struct {
	launcher seedLauncher
	catalog  seedCatalog
	reset    resetService
	log      *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(launcher seedLauncher, catalog seedCatalog, resetSvc resetService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		launcher: launcher,
		catalog:  catalog,
		reset:    resetSvc,
		log:      logger.With("handler", "admin"),
	}
}

type importRequest struct {
	Seeds []string `json:"seeds"`
	Force bool     `json:"force"`
}

type importCounts struct {
	Trips      int `json:"trips"`
	Situations int `json:"situations"`
	Phrases    int `json:"phrases"`
}

type seedOutcomeResponse struct {
	Seed       string       `json:"seed"`
	Skipped    bool         `json:"skipped"`
	Created    importCounts `json:"created"`
	Updated    importCounts `json:"updated"`
	DurationMS int64        `json:"durationMs"`
	Error      string       `json:"error,omitempty"`
}

type importResponse struct {
	Imported int                   `json:"imported"`
	Seeds    []seedOutcomeResponse `json:"seeds"`
}

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

// ImportSeeds handles POST /admin/seeds/import. An empty seed list means
// every catalog seed. Per-seed failures are reported in the body with 500.
func (h *AdminHandler) ImportSeeds(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	known := h.catalog.Names()
	names := req.Seeds
	if len(names) == 0 {
		names = known
	}
	for _, name := range names {
		if !slices.Contains(known, name) {
			writeServiceError(h.log, w, r, domain.NewValidationError("seeds", "unknown seed "+name))
			return
		}
	}

	launch := h.launcher.EnsureSeeded
	if req.Force {
		launch = h.launcher.Reimport
	}

	report, err := launch(r.Context(), names)
	if report == nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	resp := toImportResponse(report)
	status := http.StatusOK
	if err != nil {
		h.log.ErrorContext(r.Context(), "seed import failed", slog.String("error", err.Error()))
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

// Reset handles POST /admin/reset. The body must carry {"confirm": true}.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	if err := h.reset.Reset(r.Context(), reset.Input{Confirm: req.Confirm}); err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toImportResponse(report *seeder.LaunchReport) importResponse {
	resp := importResponse{
		Imported: report.Imported(),
		Seeds:    make([]seedOutcomeResponse, 0, len(report.Outcomes)),
	}
	for name, o := range report.Outcomes {
		out := seedOutcomeResponse{
			Seed:       name,
			Skipped:    o.Skipped,
			Created:    toImportCounts(o.Result.Created),
			Updated:    toImportCounts(o.Result.Updated),
			DurationMS: o.Duration.Milliseconds(),
		}
		if o.Err != nil {
			out.Error = o.Err.Error()
		}
		resp.Seeds = append(resp.Seeds, out)
	}
	sort.Slice(resp.Seeds, func(i, j int) bool { return resp.Seeds[i].Seed < resp.Seeds[j].Seed })
	return resp
}

func toImportCounts(c domain.ImportCounts) importCounts {
	return importCounts{Trips: c.Trips, Situations: c.Situations, Phrases: c.Phrases}
}
