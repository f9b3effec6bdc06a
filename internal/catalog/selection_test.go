package catalog

import (
	"testing"
	"time"

	"github.com/descobre-saude/app/models"
	"github.com/descobre-saude/internal/links"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_CascadingReset(t *testing.T) {
	var s Selection

	s.SelectProduct("10")
	s.SelectPlan("Gold")
	s.SelectProduct("10")
	assert.Equal(t, "Gold", s.PlanName, "reselecting the same product keeps the plan")

	s.SelectProduct("33")
	assert.Equal(t, "33", s.ProductCode)
	assert.Empty(t, s.PlanName)

	s.SelectProcedure(models.ProcedureCode{Code: "101", Description: "Consulta"})
	assert.Equal(t, "101", s.ProcedureCode)
	assert.Equal(t, "101 - Consulta", s.ProcedureQuery)

	s.SetProcedureQuery("consulta em")
	assert.Empty(t, s.ProcedureCode)
	assert.Equal(t, "33", s.ProductCode, "procedure changes do not touch the plan side")

	s.Reset()
	assert.Equal(t, Selection{}, s)
}

func TestSelection_Links(t *testing.T) {
	c := NewPlanCatalog(samplePlans())
	now := time.Date(2026, time.October, 15, 14, 30, 0, 0, time.UTC)

	var s Selection
	_, err := s.ProviderLink(c, now)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	s.SelectProduct("10")
	s.SelectPlan("Basic")
	_, err = s.PortalLink(c)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	s.SelectPlan("Silver")
	provider, err := s.ProviderLink(c, now)
	require.NoError(t, err)
	assert.Equal(t, links.ProviderSearchURL("P10", "LSilver", now), provider)

	portal, err := s.PortalLink(c)
	require.NoError(t, err)
	assert.Equal(t, links.PortalDetailURL("10", "Silver"), portal)
}
