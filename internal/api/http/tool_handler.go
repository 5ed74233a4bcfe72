package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/service"
)

type ToolHandler struct {
	toolSvc    service.ToolService
	bookingSvc service.BookingService
}

func NewToolHandler(toolSvc service.ToolService, bookingSvc service.BookingService) *ToolHandler {
	return &ToolHandler{toolSvc: toolSvc, bookingSvc: bookingSvc}
}

type createToolRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	Description      string `json:"description" validate:"max=4000"`
	PricePerDayCents *int64 `json:"pricePerDay" validate:"required,gte=0"`
	ImageURL         string `json:"image" validate:"omitempty,url"`
	Category         string `json:"category" validate:"required,max=100"`
	Available        *bool  `json:"available"`
}

type updateToolRequest struct {
	Name             *string `json:"name" validate:"omitempty,max=255"`
	Description      *string `json:"description" validate:"omitempty,max=4000"`
	PricePerDayCents *int64  `json:"pricePerDay" validate:"omitempty,gte=0"`
	ImageURL         *string `json:"image" validate:"omitempty,url"`
	Category         *string `json:"category" validate:"omitempty,max=100"`
	Available        *bool   `json:"available"`
}

type availabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	filter, err := toolFilterFromQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	tools, total, err := h.toolSvc.ListTools(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, r, tools, total)
}

func toolFilterFromQuery(r *http.Request) (domain.ToolFilter, error) {
	q := r.URL.Query()
	filter := domain.ToolFilter{
		Query: q.Get("q"),
		Sort:  domain.ToolSort(q.Get("sort")),
	}
	if filter.Query == "" {
		filter.Query = q.Get("search")
	}
	for _, raw := range q["category"] {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" && c != "all" {
				filter.Categories = append(filter.Categories, c)
			}
		}
	}

	var err error
	if filter.MinPriceCents, err = queryInt64(r, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPriceCents, err = queryInt64(r, "maxPrice"); err != nil {
		return filter, err
	}
	if filter.Page, err = queryInt32(r, "page"); err != nil {
		return filter, err
	}
	if filter.PageSize, err = queryInt32(r, "pageSize"); err != nil {
		return filter, err
	}
	if raw := q.Get("available"); raw != "" {
		only, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid available %q: %w", raw, domain.ErrInvalidInput)
		}
		filter.OnlyAvailable = only
	}
	return filter, nil
}

func (h *ToolHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.toolSvc.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondJSON(w, r, http.StatusOK, categories)
}

func (h *ToolHandler) GetTool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	tool, err := h.toolSvc.GetTool(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, tool)
}

func (h *ToolHandler) GetUnavailableDates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	dates, err := h.bookingSvc.GetUnavailableDates(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if dates == nil {
		dates = []domain.Date{}
	}
	respondJSON(w, r, http.StatusOK, dates)
}

// GetCalendar expects ?month=YYYY-MM.
func (h *ToolHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	raw := r.URL.Query().Get("month")
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		respondError(w, r, fmt.Errorf("invalid month %q, expected yyyy-mm: %w", raw, domain.ErrInvalidInput))
		return
	}
	days, err := h.bookingSvc.GetCalendar(r.Context(), id, month.Year(), month.Month())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, days)
}

func (h *ToolHandler) CreateTool(w http.ResponseWriter, r *http.Request) {
	var req createToolRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	tool := &domain.Tool{
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		PricePerDayCents: *req.PricePerDayCents,
		ImageURL:         req.ImageURL,
		Category:         strings.TrimSpace(req.Category),
		Available:        true,
	}
	if req.Available != nil {
		tool.Available = *req.Available
	}
	if err := h.toolSvc.CreateTool(r.Context(), tool); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, tool)
}

func (h *ToolHandler) UpdateTool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req updateToolRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	tool, err := h.toolSvc.UpdateTool(r.Context(), id, domain.ToolPatch{
		Name:             req.Name,
		Description:      req.Description,
		PricePerDayCents: req.PricePerDayCents,
		ImageURL:         req.ImageURL,
		Category:         req.Category,
		Available:        req.Available,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, tool)
}

func (h *ToolHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req availabilityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	tool, err := h.toolSvc.SetToolAvailability(r.Context(), id, *req.Available)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, tool)
}

func (h *ToolHandler) DeleteTool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.toolSvc.DeleteTool(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
