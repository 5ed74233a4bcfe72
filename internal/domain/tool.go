package domain

import (
	"fmt"
	"strings"
	"time"
)

const MaxToolNameLength = 255

type Tool struct {
	ID               int32      `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	PricePerDayCents int64      `json:"pricePerDay"`
	ImageURL         string     `json:"image"`
	Category         string     `json:"category"`
	Available        bool       `json:"available"`
	CreatedOn        time.Time  `json:"createdOn"`
	DeletedOn        *time.Time `json:"-"`
}

func (t *Tool) Validate() error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return fmt.Errorf("tool name is required: %w", ErrInvalidInput)
	}
	if len(name) > MaxToolNameLength {
		return fmt.Errorf("tool name is too long (max %d characters): %w", MaxToolNameLength, ErrInvalidInput)
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("tool category is required: %w", ErrInvalidInput)
	}
	if t.PricePerDayCents < 0 {
		return ErrNegativePrice
	}
	return nil
}

// ToolPatch carries a partial update; nil fields are left untouched.
type ToolPatch struct {
	Name             *string
	Description      *string
	PricePerDayCents *int64
	ImageURL         *string
	Category         *string
	Available        *bool
}

func (t *Tool) Apply(p ToolPatch) {
	if p.Name != nil {
		t.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.PricePerDayCents != nil {
		t.PricePerDayCents = *p.PricePerDayCents
	}
	if p.ImageURL != nil {
		t.ImageURL = *p.ImageURL
	}
	if p.Category != nil {
		t.Category = strings.TrimSpace(*p.Category)
	}
	if p.Available != nil {
		t.Available = *p.Available
	}
}

type ToolSort string

const (
	ToolSortPopular   ToolSort = "popular"
	ToolSortPriceAsc  ToolSort = "price-asc"
	ToolSortPriceDesc ToolSort = "price-desc"
	ToolSortName      ToolSort = "name"
)

func (s ToolSort) IsValid() bool {
	switch s {
	case ToolSortPopular, ToolSortPriceAsc, ToolSortPriceDesc, ToolSortName:
		return true
	default:
		return false
	}
}

// ToolFilter drives catalog search. MaxPriceCents == 0 means no upper bound.
type ToolFilter struct {
	Query         string
	Categories    []string
	MinPriceCents int64
	MaxPriceCents int64
	OnlyAvailable bool
	Sort          ToolSort
	Page          int32
	PageSize      int32
}

// Normalize fills defaults and clamps paging.
func (f *ToolFilter) Normalize(defaultPageSize int32) {
	f.Query = strings.TrimSpace(f.Query)
	if !f.Sort.IsValid() {
		f.Sort = ToolSortPopular
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	if f.MinPriceCents < 0 {
		f.MinPriceCents = 0
	}
}
