package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// Listing defaults and bounds shared by every resource
const (
	DefaultPerPage = 15
	MaxPerPage     = 100
	DefaultSortBy  = "created_at"
	DefaultSortDir = "desc"
)

// ListOptions carries the sorting/paging part of a validated list request.
// Values are immutable once built; query construction never mutates them.
type ListOptions struct {
	SortBy         string
	SortDirection  string
	Page           int
	PerPage        int
	IncludeDeleted bool
}

// orderClause builds the ORDER BY clause. SortBy has been allow-listed at
// validation time. A secondary id ordering keeps result order deterministic
// for equal sort-key values within a single query execution.
func (o ListOptions) orderClause() string {
	return fmt.Sprintf("%s %s, id %s", o.SortBy, o.SortDirection, o.SortDirection)
}

// offset returns the row offset for the requested page
func (o ListOptions) offset() int {
	return (o.Page - 1) * o.PerPage
}

// scope returns the base query for a model, including soft-deleted rows when
// requested
func (o ListOptions) scope(db *gorm.DB, model interface{}) *gorm.DB {
	query := db.Model(model)
	if o.IncludeDeleted {
		query = query.Unscoped()
	}
	return query
}

// CustomerFilter is the validated filter set for customer listings
type CustomerFilter struct {
	Email       string // case-insensitive contains match
	HasOrders   *bool  // partition by existence of non-deleted orders
	CreatedFrom string // inclusive, calendar date
	CreatedTo   string // inclusive, calendar date
	ListOptions
}

// ProductFilter is the validated filter set for product listings
type ProductFilter struct {
	Name     string // case-insensitive contains match
	PriceMin *float64
	PriceMax *float64
	ListOptions
}

// OrderFilter is the validated filter set for order listings
type OrderFilter struct {
	CustomerID  *uint
	StatusID    *uint
	CreatedFrom string
	CreatedTo   string
	ListOptions
}

// applyDateRange adds inclusive calendar-date bounds on created_at
func applyDateRange(query *gorm.DB, from, to string) *gorm.DB {
	if from != "" {
		query = query.Where("DATE(created_at) >= ?", from)
	}
	if to != "" {
		query = query.Where("DATE(created_at) <= ?", to)
	}
	return query
}
