package inventory

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Jkennedy2004/StokyGesti-n/internal/platform/httpx"
	"github.com/Jkennedy2004/StokyGesti-n/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/movimientos", h.History)
	r.Post("/movimientos", h.Apply)
}

type movementRequest struct {
	MaterialID  string  `json:"material_id" validate:"required,uuid"`
	Type        string  `json:"tipo" validate:"required"`
	Quantity    float64 `json:"cantidad"`
	Reason      string  `json:"motivo"`
	ReferenceID string  `json:"referencia_id" validate:"omitempty,uuid"`
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	filter := MovementFilter{Page: 1, Limit: 50}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if v := r.URL.Query().Get("material_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "material_id must be a UUID")
			return
		}
		filter.MaterialID = &id
	}
	if v := r.URL.Query().Get("tipo"); v != "" {
		movementType := MovementType(v)
		if !movementType.Valid() {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown tipo")
			return
		}
		filter.Type = &movementType
	}
	if from, err := time.Parse("2006-01-02", r.URL.Query().Get("desde")); err == nil {
		filter.From = from
	}
	if to, err := time.Parse("2006-01-02", r.URL.Query().Get("hasta")); err == nil {
		filter.To = to
	}

	items, total, err := h.service.History(r.Context(), filter)
	if err != nil {
		h.logger.Error("list movements", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      items,
		"pagination": shared.NewPagination(filter.Page, filter.Limit, total),
	})
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var req movementRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	materialID, err := uuid.Parse(req.MaterialID)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "material_id must be a UUID")
		return
	}
	input := MovementInput{
		MaterialID: materialID,
		Type:       MovementType(req.Type),
		Quantity:   req.Quantity,
		Reason:     req.Reason,
	}
	if req.ReferenceID != "" {
		refID, err := uuid.Parse(req.ReferenceID)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "referencia_id must be a UUID")
			return
		}
		input.ReferenceID = &refID
	}

	movement, err := h.service.Apply(r.Context(), input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, movement)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMaterialNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "material does not exist")
	case errors.Is(err, ErrInvalidMovementType), errors.Is(err, ErrInvalidQuantity):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrInsufficientStock):
		httpx.Problem(w, http.StatusConflict, "Insufficient Stock", err.Error())
	default:
		h.logger.Error("inventory handler", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
