package web

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"fxreturns/internal/config"
	"fxreturns/internal/dataset"
	apperrors "fxreturns/internal/errors"
	"fxreturns/internal/report"
	"fxreturns/internal/snapshot"
	"fxreturns/pkg/contracts/domain"
)

// Handler serves the dataset and summary endpoints.
type Handler struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewHandler builds a handler over the pipeline's artifact paths.
func NewHandler(paths *config.Paths, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{paths: paths, logger: logger}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// Returns serves the standardized dataset, optionally filtered to one
// currency via ?currency= and rendered as CSV via ?format=csv.
func (h *Handler) Returns(w http.ResponseWriter, r *http.Request) {
	points, err := dataset.LoadStandardized(h.paths.StandardizedSnapshot())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if currency := r.URL.Query().Get("currency"); currency != "" {
		currency = strings.ToUpper(strings.TrimSpace(currency))
		filtered := points[:0:0]
		for _, p := range points {
			if p.UniqueID == currency {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			render.Render(w, r, apperrors.ToAPIError(
				apperrors.NewNotFoundError("currency").WithContext("currency", currency)))
			return
		}
		points = filtered
	}

	if r.URL.Query().Get("format") == "csv" {
		h.writeCSV(w, points)
		return
	}
	render.JSON(w, r, points)
}

// Summary serves the per-currency summary statistics.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	points, err := dataset.LoadStandardized(h.paths.StandardizedSnapshot())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, report.Summarize(points))
}

func (h *Handler) writeCSV(w http.ResponseWriter, points []domain.ReturnPoint) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+config.StandardizedSnapshotFile)

	writer := csv.NewWriter(w)
	writer.Write([]string{domain.ColumnUniqueID, domain.ColumnDS, domain.ColumnY})
	for _, p := range points {
		writer.Write([]string{p.UniqueID, snapshot.FormatDate(p.DS), snapshot.FormatValue(p.Y)})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.Error("failed to stream csv", slog.String("error", err.Error()))
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	render.Render(w, r, apperrors.ToAPIError(err))
}
