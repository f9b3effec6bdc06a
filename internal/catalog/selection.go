package catalog

import (
	"time"

	"github.com/descobre-saude/app/models"
	"github.com/descobre-saude/internal/links"
)

// Selection is the state of the find-provider flow: product, then plan, then
// an optional procedure. Earlier choices reset later ones.
type Selection struct {
	ProductCode    string `json:"productCode"`
	PlanName       string `json:"planName"`
	ProcedureQuery string `json:"procedureQuery"`
	ProcedureCode  string `json:"procedureCode"`
}

// SelectProduct sets the product and clears the plan when it changes.
func (s *Selection) SelectProduct(productCode string) {
	if s.ProductCode != productCode {
		s.PlanName = ""
	}
	s.ProductCode = productCode
}

// SelectPlan sets the plan name.
func (s *Selection) SelectPlan(planName string) {
	s.PlanName = planName
}

// SetProcedureQuery updates the procedure search text. Any typing clears the
// selected procedure.
func (s *Selection) SetProcedureQuery(query string) {
	s.ProcedureQuery = query
	s.ProcedureCode = ""
}

// SelectProcedure picks a procedure and echoes it into the query text.
func (s *Selection) SelectProcedure(p models.ProcedureCode) {
	s.ProcedureCode = p.Code
	s.ProcedureQuery = p.Code + " - " + p.Description
}

// Reset clears every selection.
func (s *Selection) Reset() {
	*s = Selection{}
}

// Resolve returns the plan record the selection points at.
func (s *Selection) Resolve(c *PlanCatalog) (models.PlanRecord, error) {
	if s.ProductCode == "" || s.PlanName == "" {
		return models.PlanRecord{}, ErrPlanNotFound
	}
	return c.FindPlan(s.ProductCode, s.PlanName)
}

// ProviderLink builds the provider-search URL for the selected plan.
func (s *Selection) ProviderLink(c *PlanCatalog, now time.Time) (string, error) {
	plan, err := s.Resolve(c)
	if err != nil {
		return "", err
	}
	return links.ProviderSearchURL(plan.APIProductCode, plan.APIPlanCode, now), nil
}

// PortalLink builds the portal detail URL for the selected plan.
func (s *Selection) PortalLink(c *PlanCatalog) (string, error) {
	plan, err := s.Resolve(c)
	if err != nil {
		return "", err
	}
	return links.PortalDetailURL(plan.ProductCode, plan.PlanName), nil
}
