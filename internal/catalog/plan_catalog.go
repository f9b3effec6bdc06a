package catalog

import (
	"errors"
	"sort"
	"strconv"

	"github.com/descobre-saude/app/models"
	"github.com/descobre-saude/internal/normalizer"
)

// ErrPlanNotFound is returned when no plan matches a product code and plan name.
var ErrPlanNotFound = errors.New("plan not found")

type indexedPlan struct {
	record     models.PlanRecord
	searchable string // normalized "productCode planName ansRegisteredName ansCode"
}

// PlanCatalog holds the plan table in dataset order.
type PlanCatalog struct {
	plans []indexedPlan
}

// Stats summarizes the plan table.
type Stats struct {
	TotalPlans              int `json:"total_products"`
	DistinctProducts        int `json:"distinct_products"`
	DistinctPlanNames       int `json:"distinct_plans"`
	DistinctSegments        int `json:"distinct_segments"`
	DistinctClassifications int `json:"distinct_classifications"`
}

// NewPlanCatalog builds a catalog over plans. The slice is copied.
func NewPlanCatalog(plans []models.PlanRecord) *PlanCatalog {
	indexed := make([]indexedPlan, len(plans))
	for i, p := range plans {
		indexed[i] = indexedPlan{
			record: p,
			searchable: normalizer.Normalize(
				p.ProductCode + " " + p.PlanName + " " + p.ANSRegisteredName + " " + p.ANSCode,
			),
		}
	}
	return &PlanCatalog{plans: indexed}
}

// Len returns the number of plan records.
func (c *PlanCatalog) Len() int {
	return len(c.plans)
}

// All returns every record in dataset order.
func (c *PlanCatalog) All() []models.PlanRecord {
	out := make([]models.PlanRecord, len(c.plans))
	for i := range c.plans {
		out[i] = c.plans[i].record
	}
	return out
}

// DistinctProductCodes returns each product code once, sorted as integers.
func (c *PlanCatalog) DistinctProductCodes() []string {
	codes := c.distinct(func(p *models.PlanRecord) string { return p.ProductCode })
	SortNumeric(codes)
	return codes
}

// DistinctPlanNames returns each plan name once, sorted lexically.
func (c *PlanCatalog) DistinctPlanNames() []string {
	return c.distinctSorted(func(p *models.PlanRecord) string { return p.PlanName })
}

// DistinctSegments returns each segment once, sorted lexically.
func (c *PlanCatalog) DistinctSegments() []string {
	return c.distinctSorted(func(p *models.PlanRecord) string { return p.Segment })
}

// DistinctClassifications returns each classification once, sorted lexically.
func (c *PlanCatalog) DistinctClassifications() []string {
	return c.distinctSorted(func(p *models.PlanRecord) string { return p.Classification })
}

// DistinctStatuses returns each status once, sorted lexically.
func (c *PlanCatalog) DistinctStatuses() []string {
	return c.distinctSorted(func(p *models.PlanRecord) string { return p.Status })
}

// PlansForProduct returns the distinct plan names offered under productCode,
// sorted lexically. An empty productCode yields an empty list.
func (c *PlanCatalog) PlansForProduct(productCode string) []string {
	if productCode == "" {
		return []string{}
	}
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for i := range c.plans {
		p := &c.plans[i].record
		if p.ProductCode != productCode {
			continue
		}
		if _, ok := seen[p.PlanName]; ok {
			continue
		}
		seen[p.PlanName] = struct{}{}
		names = append(names, p.PlanName)
	}
	sort.Strings(names)
	return names
}

// ProductGroups lists every product with its distinct plan names. Groups are
// sorted numerically by product code and plan names lexically.
func (c *PlanCatalog) ProductGroups() []models.ProductGroup {
	// single pass; position keeps first-seen order independent of map iteration
	position := make(map[string]int)
	seenPlan := make(map[models.PlanKey]struct{})
	groups := make([]models.ProductGroup, 0)

	for i := range c.plans {
		p := &c.plans[i].record
		pos, ok := position[p.ProductCode]
		if !ok {
			pos = len(groups)
			position[p.ProductCode] = pos
			groups = append(groups, models.ProductGroup{ProductCode: p.ProductCode, PlanNames: []string{}})
		}
		if _, dup := seenPlan[p.Key()]; dup {
			continue
		}
		seenPlan[p.Key()] = struct{}{}
		groups[pos].PlanNames = append(groups[pos].PlanNames, p.PlanName)
	}

	for i := range groups {
		sort.Strings(groups[i].PlanNames)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return numericLess(groups[i].ProductCode, groups[j].ProductCode)
	})
	return groups
}

// Filter returns the records satisfying every non-empty criterion of f, in
// dataset order. Facet criteria compare exactly; Search is split into
// normalized terms that must all occur in the record's searchable text.
func (c *PlanCatalog) Filter(f models.PlanFilter) []models.PlanRecord {
	terms := normalizer.Terms(f.Search)
	results := make([]models.PlanRecord, 0)

	for i := range c.plans {
		p := &c.plans[i].record
		if f.ProductCode != "" && p.ProductCode != f.ProductCode {
			continue
		}
		if f.PlanName != "" && p.PlanName != f.PlanName {
			continue
		}
		if f.Segment != "" && p.Segment != f.Segment {
			continue
		}
		if f.Classification != "" && p.Classification != f.Classification {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if !normalizer.ContainsAll(c.plans[i].searchable, terms) {
			continue
		}
		results = append(results, *p)
	}
	return results
}

// FindPlan resolves a product code and plan name to the first matching record.
func (c *PlanCatalog) FindPlan(productCode, planName string) (models.PlanRecord, error) {
	for i := range c.plans {
		p := &c.plans[i].record
		if p.ProductCode == productCode && p.PlanName == planName {
			return *p, nil
		}
	}
	return models.PlanRecord{}, ErrPlanNotFound
}

// Stats counts records and distinct facet values.
func (c *PlanCatalog) Stats() Stats {
	return Stats{
		TotalPlans:              len(c.plans),
		DistinctProducts:        len(c.distinct(func(p *models.PlanRecord) string { return p.ProductCode })),
		DistinctPlanNames:       len(c.distinct(func(p *models.PlanRecord) string { return p.PlanName })),
		DistinctSegments:        len(c.distinct(func(p *models.PlanRecord) string { return p.Segment })),
		DistinctClassifications: len(c.distinct(func(p *models.PlanRecord) string { return p.Classification })),
	}
}

func (c *PlanCatalog) distinct(field func(*models.PlanRecord) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for i := range c.plans {
		v := field(&c.plans[i].record)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

func (c *PlanCatalog) distinctSorted(field func(*models.PlanRecord) string) []string {
	values := c.distinct(field)
	sort.Strings(values)
	return values
}

// SortNumeric sorts codes ascending by integer value ("2" before "10").
// Codes that do not parse as integers sort after numeric ones, lexically.
func SortNumeric(codes []string) {
	sort.SliceStable(codes, func(i, j int) bool {
		return numericLess(codes[i], codes[j])
	})
}

func numericLess(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		if na != nb {
			return na < nb
		}
		return a < b // "7" vs "007"
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
