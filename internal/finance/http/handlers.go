package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jkennedy2004/StokyGesti-n/internal/finance"
	"github.com/Jkennedy2004/StokyGesti-n/internal/finance/export"
	"github.com/Jkennedy2004/StokyGesti-n/internal/platform/httpx"
)

// Handler serves the read-only analytics surface.
type Handler struct {
	logger  *slog.Logger
	service *finance.Service
}

func NewHandler(logger *slog.Logger, service *finance.Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/analisis", h.Statement)
	r.Get("/costos", h.OperatingCosts)
	r.Get("/rentabilidad", h.Profitability)
	r.Get("/salud", h.Health)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/export/analisis.csv", h.ExportStatementCSV)
	r.Get("/export/rentabilidad.csv", h.ExportProfitabilityCSV)
}

func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	result, err, _ := singleflightBuild(r.Context(), "statement", func(ctx context.Context) (interface{}, error) {
		return h.service.Statement(ctx)
	})
	if err != nil {
		h.fail(w, "build statement", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) OperatingCosts(w http.ResponseWriter, r *http.Request) {
	costs, err := h.service.OperatingCosts(r.Context())
	if err != nil {
		h.fail(w, "build operating costs", err)
		return
	}
	httpx.JSON(w, http.StatusOK, costs)
}

func (h *Handler) Profitability(w http.ResponseWriter, r *http.Request) {
	result, err, _ := singleflightBuild(r.Context(), "profitability", func(ctx context.Context) (interface{}, error) {
		return h.service.Profitability(ctx)
	})
	if err != nil {
		h.fail(w, "build profitability", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": result})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.HealthReport(r.Context())
	if err != nil {
		h.fail(w, "build health report", err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err, _ := singleflightBuild(r.Context(), "dashboard", func(ctx context.Context) (interface{}, error) {
		return h.service.Dashboard(ctx)
	})
	if err != nil {
		h.fail(w, "build dashboard", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) ExportStatementCSV(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Statement(r.Context())
	if err != nil {
		h.fail(w, "export statement", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="analisis-financiero.csv"`)
	if err := export.WriteStatementCSV(w, st); err != nil {
		h.logger.Error("write statement csv", slog.Any("error", err))
	}
}

func (h *Handler) ExportProfitabilityCSV(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.service.Profitability(r.Context())
	if err != nil {
		h.fail(w, "export profitability", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="rentabilidad-productos.csv"`)
	if err := export.WriteProfitabilityCSV(w, ranking); err != nil {
		h.logger.Error("write profitability csv", slog.Any("error", err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}
