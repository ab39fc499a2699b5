package org

import (
	"context"
	"sort"
	"strings"

	"github.com/retailboard/backend/internal/domain/shared"
	"golang.org/x/text/width"
)

// Unassigned is the reserved region key for stores that have not been
// assigned to a manager. It is always a valid bucket, even when empty.
const Unassigned = "未分區"

// storeSuffix is appended to a brand-prefixed short name to form the full
// display name, e.g. "CYJ" + "板橋" + "店".
const storeSuffix = "店"

// StoreRef identifies a configured store within the hierarchy.
type StoreRef struct {
	ShortName string `json:"short_name"`
	Manager   string `json:"manager"`
}

// Hierarchy is the region→stores mapping the aggregation engine consumes.
// A store short name belongs to at most one region. The zero value is not
// usable; construct via NewHierarchy.
type Hierarchy struct {
	regions map[string][]string
}

// NewHierarchy builds a Hierarchy from a manager→short-names mapping.
// The input is copied; the reserved unassigned bucket is always present.
func NewHierarchy(regions map[string][]string) Hierarchy {
	h := Hierarchy{regions: make(map[string][]string, len(regions)+1)}
	for manager, stores := range regions {
		h.regions[manager] = append([]string(nil), stores...)
	}
	if _, ok := h.regions[Unassigned]; !ok {
		h.regions[Unassigned] = []string{}
	}
	return h
}

// IsZero reports whether the hierarchy was never constructed.
func (h Hierarchy) IsZero() bool {
	return h.regions == nil
}

// Managers returns all region keys in a stable (sorted) order, with the
// unassigned bucket last.
func (h Hierarchy) Managers() []string {
	managers := make([]string, 0, len(h.regions))
	for m := range h.regions {
		if m == Unassigned {
			continue
		}
		managers = append(managers, m)
	}
	sort.Strings(managers)
	return append(managers, Unassigned)
}

// Stores returns the short names configured under a manager.
func (h Hierarchy) Stores(manager string) []string {
	return append([]string(nil), h.regions[manager]...)
}

// AllStores flattens the hierarchy into the full expected store list, in
// stable manager order. Every configured store appears exactly once.
func (h Hierarchy) AllStores() []StoreRef {
	var refs []StoreRef
	for _, manager := range h.Managers() {
		for _, short := range h.regions[manager] {
			refs = append(refs, StoreRef{ShortName: short, Manager: manager})
		}
	}
	return refs
}

// RegionOf returns the manager a store short name belongs to.
func (h Hierarchy) RegionOf(shortName string) (string, bool) {
	want := NormalizeName(shortName)
	for manager, stores := range h.regions {
		for _, s := range stores {
			if NormalizeName(s) == want {
				return manager, true
			}
		}
	}
	return "", false
}

// Move reassigns a store to another region as a single atomic operation:
// removed from its current region and appended to the destination. Moving
// to Unassigned is always allowed; any other destination must exist.
func (h Hierarchy) Move(shortName, toManager string) (Hierarchy, error) {
	if toManager != Unassigned {
		if _, ok := h.regions[toManager]; !ok {
			return Hierarchy{}, shared.ErrUnknownRegion
		}
	}
	from, ok := h.RegionOf(shortName)
	if !ok {
		return Hierarchy{}, shared.ErrUnknownStore
	}

	next := NewHierarchy(h.regions)
	kept := next.regions[from][:0]
	for _, s := range next.regions[from] {
		if NormalizeName(s) != NormalizeName(shortName) {
			kept = append(kept, s)
		}
	}
	next.regions[from] = kept
	next.regions[toManager] = append(next.regions[toManager], shortName)
	return next, nil
}

// FullStoreName builds the display name from a brand prefix and a short
// name: prefix + short + "店".
func FullStoreName(brandPrefix, shortName string) string {
	return brandPrefix + shortName + storeSuffix
}

// NormalizeName folds fullwidth/halfwidth variants and trims whitespace so
// that names entered through different sources compare equal.
func NormalizeName(name string) string {
	return strings.TrimSpace(width.Fold.String(name))
}

// MatchesStore reports whether a report's store name refers to the given
// configured store, tolerating full prefixed names, bare short names, and
// width variants.
func MatchesStore(reportStoreName, brandPrefix, shortName string) bool {
	got := NormalizeName(reportStoreName)
	if got == "" {
		return false
	}
	full := NormalizeName(FullStoreName(brandPrefix, shortName))
	short := NormalizeName(shortName)
	return got == full || got == short || got == short+storeSuffix
}

// Repository loads and persists the org hierarchy.
type Repository interface {
	GetHierarchy(ctx context.Context) (Hierarchy, error)
	SaveRegion(ctx context.Context, manager string, stores []string) error
	MoveStore(ctx context.Context, shortName, toManager string) error
}
