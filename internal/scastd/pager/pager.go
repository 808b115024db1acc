// Package pager computes the page cycle of a product list slide
package pager

import (
	"github.com/slidecast/slidecast/api/types/v1alpha1"
)

// Defaults applied when the customization omits a value, matching the
// remote panel's own fallbacks.
const (
	DefaultPagination  = 1
	DefaultPageSeconds = 10
)

// Slot is one position on a rendered page. Padding slots have Empty set
// so every page always shows exactly the configured number of slots.
type Slot struct {
	Empty   bool
	Product v1alpha1.Product
}

// Pager splits an ordered product sequence into fixed-size pages. It is
// pure: the enclosing scheduler owns all timing.
type Pager struct {
	products    []v1alpha1.Product
	pagination  int
	pageSeconds int
}

// New builds a pager for the given products. Non-positive pagination or
// page duration fall back to the defaults.
func New(products []v1alpha1.Product, pagination, pageSeconds int) *Pager {
	if pagination <= 0 {
		pagination = DefaultPagination
	}
	if pageSeconds <= 0 {
		pageSeconds = DefaultPageSeconds
	}
	return &Pager{
		products:    products,
		pagination:  pagination,
		pageSeconds: pageSeconds,
	}
}

// Pagination returns the number of slots per page.
func (p *Pager) Pagination() int {
	return p.pagination
}

// TotalPages returns ceil(len(products) / pagination), never less than 1:
// a list with fewer products than one page still displays for a full
// page interval.
func (p *Pager) TotalPages() int {
	n := (len(p.products) + p.pagination - 1) / p.pagination
	if n < 1 {
		n = 1
	}
	return n
}

// PageSeconds returns the configured per-page dwell in seconds.
func (p *Pager) PageSeconds() int {
	return p.pageSeconds
}

// Page returns the slots of page i, padded with empty slots up to the
// page size. Out-of-range pages return a fully padded page.
func (p *Pager) Page(i int) []Slot {
	slots := make([]Slot, 0, p.pagination)

	start := i * p.pagination
	if i >= 0 && start < len(p.products) {
		end := start + p.pagination
		if end > len(p.products) {
			end = len(p.products)
		}
		for _, prod := range p.products[start:end] {
			slots = append(slots, Slot{Product: prod})
		}
	}
	for len(slots) < p.pagination {
		slots = append(slots, Slot{Empty: true})
	}
	return slots
}

// Last reports whether page i is the final page of the cycle.
func (p *Pager) Last(i int) bool {
	return i >= p.TotalPages()-1
}
