package requests

import (
	"strings"

	"github.com/mvera-dev/backoffice-api/repositories"
)

// SortDirections are the accepted values for sort_direction
var SortDirections = []string{"asc", "desc"}

// ListParams carries the sorting/paging query parameters shared by every list
// endpoint
type ListParams struct {
	SortBy         string `form:"sort_by"`
	SortDirection  string `form:"sort_direction"`
	PerPage        *int   `form:"per_page"`
	Page           *int   `form:"page"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// validateList checks the shared parameters against the resource's sort-field
// allow-list. Sort fields outside the allow-list never reach the query layer.
func (p *ListParams) validateList(errs Errors, sortFields []string) {
	if p.SortBy != "" && !inList(p.SortBy, sortFields) {
		errs.Add("sort_by", "The sort field must be one of: "+strings.Join(sortFields, ", ")+".")
	}
	if p.SortDirection != "" && !inList(p.SortDirection, SortDirections) {
		errs.Add("sort_direction", "The sort direction must be either asc or desc.")
	}
	if p.PerPage != nil {
		if *p.PerPage < 1 {
			errs.Add("per_page", "The per page value must be at least 1.")
		} else if *p.PerPage > repositories.MaxPerPage {
			errs.Add("per_page", "The per page value may not be greater than 100.")
		}
	}
	if p.Page != nil && *p.Page < 1 {
		errs.Add("page", "The page number must be at least 1.")
	}
}

// options applies defaults and returns the immutable list options value object
func (p *ListParams) options() repositories.ListOptions {
	opts := repositories.ListOptions{
		SortBy:         repositories.DefaultSortBy,
		SortDirection:  repositories.DefaultSortDir,
		Page:           1,
		PerPage:        repositories.DefaultPerPage,
		IncludeDeleted: p.IncludeDeleted,
	}
	if p.SortBy != "" {
		opts.SortBy = p.SortBy
	}
	if p.SortDirection != "" {
		opts.SortDirection = p.SortDirection
	}
	if p.Page != nil {
		opts.Page = *p.Page
	}
	if p.PerPage != nil {
		opts.PerPage = *p.PerPage
	}
	return opts
}

// sortedFilters returns the shared sort parameters with defaults applied, for
// echoing back in the filters envelope field
func (p *ListParams) sortedFilters() map[string]interface{} {
	opts := p.options()
	return map[string]interface{}{
		"sort_by":        opts.SortBy,
		"sort_direction": opts.SortDirection,
	}
}

// validateDateRange checks both bounds of a created_at calendar-date range
func validateDateRange(errs Errors, from, to string) {
	fromValid, toValid := true, true
	if from != "" {
		if _, err := parseDate(from); err != nil {
			errs.Add("created_from", "The created from date must be a valid date.")
			fromValid = false
		}
	}
	if to != "" {
		if _, err := parseDate(to); err != nil {
			errs.Add("created_to", "The created to date must be a valid date.")
			toValid = false
		}
	}
	if from != "" && to != "" && fromValid && toValid {
		f, _ := parseDate(from)
		t, _ := parseDate(to)
		if f.After(t) {
			errs.Add("created_from", "The created from date must be before or equal to the created to date.")
		}
	}
}
