package catalog

import (
	"sort"

	"github.com/descobre-saude/app/models"
)

// DefaultANSSummarySize is how many ANS codes a result summary shows.
const DefaultANSSummarySize = 20

// ANSSummary lists the distinct ANS codes of a result set.
type ANSSummary struct {
	Codes     []string `json:"codes"`
	Remaining int      `json:"remaining"` // distinct codes left out of Codes
}

// SummarizeANSCodes returns the distinct ANS codes of records sorted
// lexically, keeping at most max of them. max <= 0 keeps all.
func SummarizeANSCodes(records []models.PlanRecord, max int) ANSSummary {
	seen := make(map[string]struct{})
	codes := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.ANSCode]; ok {
			continue
		}
		seen[r.ANSCode] = struct{}{}
		codes = append(codes, r.ANSCode)
	}
	sort.Strings(codes)

	if max <= 0 || len(codes) <= max {
		return ANSSummary{Codes: codes}
	}
	return ANSSummary{Codes: codes[:max], Remaining: len(codes) - max}
}
