package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/descobre-saude/app/models"
	"github.com/descobre-saude/internal/catalog"
	"github.com/descobre-saude/internal/links"
	"github.com/descobre-saude/internal/loader"
	"github.com/descobre-saude/internal/normalizer"
	"github.com/descobre-saude/internal/pager"
	"go.uber.org/zap"
)

// ErrUnknownFacet is returned by Facet for an unsupported facet name.
var ErrUnknownFacet = errors.New("unknown facet")

// Facet names accepted by Facet.
const (
	FacetProductCodes    = "product-codes"
	FacetPlanNames       = "plan-names"
	FacetSegments        = "segments"
	FacetClassifications = "classifications"
	FacetStatuses        = "statuses"
)

// PlanPage is one page of filtered plans plus the ANS codes of the whole result.
type PlanPage struct {
	pager.Page[models.PlanRecord]
	ANSCodes catalog.ANSSummary `json:"ans_codes"`
}

// PlanLinks bundles a resolved plan with its outbound URLs.
type PlanLinks struct {
	Plan              models.PlanRecord `json:"plan"`
	ProviderSearchURL string            `json:"provider_search_url"`
	PortalURL         string            `json:"portal_url"`
	LinkAvailable     bool              `json:"link_available"`
}

// CatalogStats summarizes both datasets.
type CatalogStats struct {
	catalog.Stats
	TotalProcedures int    `json:"total_tuss_codes"`
	DatasetVersion  string `json:"dataset_version"`
}

// CatalogService serves catalog queries, caching paginated results.
type CatalogService struct {
	procedures *catalog.ProcedureIndex
	plans      *catalog.PlanCatalog
	cache      ICacheService
	version    string
	logger     *zap.Logger
	now        func() time.Time
}

// NewCatalogService builds the indexes from ds. cache may be nil.
func NewCatalogService(ds *loader.Dataset, cache ICacheService, logger *zap.Logger) *CatalogService {
	cs := &CatalogService{
		procedures: catalog.NewProcedureIndex(ds.Procedures),
		plans:      catalog.NewPlanCatalog(ds.Plans),
		cache:      cache,
		version:    datasetVersion(ds),
		logger:     logger,
		now:        time.Now,
	}
	logger.Info("Catalog ready",
		zap.Int("procedures", cs.procedures.Len()),
		zap.Int("plans", cs.plans.Len()),
		zap.String("dataset_version", cs.version))
	return cs
}

// DatasetVersion identifies the loaded data; cache keys include it.
func (cs *CatalogService) DatasetVersion() string {
	return cs.version
}

// SearchProcedures runs ProcedureIndex.Search and paginates the result.
func (cs *CatalogService) SearchProcedures(ctx context.Context, query string, limit, page, pageSize int) (pager.Page[models.ProcedureCode], bool) {
	key := cs.cacheKey("tuss", queryKind(query), strings.Join(normalizer.Terms(query), " "),
		strconv.Itoa(limit), strconv.Itoa(page), strconv.Itoa(pageSize))

	return cached(ctx, cs, key, func() pager.Page[models.ProcedureCode] {
		return pager.Paginate(cs.procedures.Search(query, limit), pageSize, page)
	})
}

// SuggestProcedures returns autocomplete candidates for query.
func (cs *CatalogService) SuggestProcedures(query string) []models.ProcedureCode {
	return cs.procedures.Suggest(query)
}

// LookupProcedure resolves an exact TUSS code.
func (cs *CatalogService) LookupProcedure(code string) (models.ProcedureCode, error) {
	return cs.procedures.Lookup(code)
}

// FilterPlans runs PlanCatalog.Filter and paginates the result.
func (cs *CatalogService) FilterPlans(ctx context.Context, f models.PlanFilter, page, pageSize int) (PlanPage, bool) {
	key := cs.cacheKey("plans", f.ProductCode, f.PlanName, f.Segment, f.Classification, f.Status,
		strings.Join(normalizer.Terms(f.Search), " "), strconv.Itoa(page), strconv.Itoa(pageSize))

	return cached(ctx, cs, key, func() PlanPage {
		var matches []models.PlanRecord
		if f.IsEmpty() {
			matches = cs.plans.All()
		} else {
			matches = cs.plans.Filter(f)
		}
		return PlanPage{
			Page:     pager.Paginate(matches, pageSize, page),
			ANSCodes: catalog.SummarizeANSCodes(matches, catalog.DefaultANSSummarySize),
		}
	})
}

// Facet returns the distinct values of one facet.
func (cs *CatalogService) Facet(name string) ([]string, error) {
	switch name {
	case FacetProductCodes:
		return cs.plans.DistinctProductCodes(), nil
	case FacetPlanNames:
		return cs.plans.DistinctPlanNames(), nil
	case FacetSegments:
		return cs.plans.DistinctSegments(), nil
	case FacetClassifications:
		return cs.plans.DistinctClassifications(), nil
	case FacetStatuses:
		return cs.plans.DistinctStatuses(), nil
	default:
		return nil, ErrUnknownFacet
	}
}

// ProductGroups lists products with their plan names.
func (cs *CatalogService) ProductGroups() []models.ProductGroup {
	return cs.plans.ProductGroups()
}

// PlansForProduct lists the plan names of one product.
func (cs *CatalogService) PlansForProduct(productCode string) []string {
	return cs.plans.PlansForProduct(productCode)
}

// ResolveLinks finds the plan and builds both outbound links. A miss returns
// catalog.ErrPlanNotFound and no links.
func (cs *CatalogService) ResolveLinks(productCode, planName string) (*PlanLinks, error) {
	var sel catalog.Selection
	sel.SelectProduct(productCode)
	sel.SelectPlan(planName)

	plan, err := sel.Resolve(cs.plans)
	if err != nil {
		return nil, err
	}

	provider, err := sel.ProviderLink(cs.plans, cs.now())
	if err != nil {
		return nil, err
	}
	portal, err := sel.PortalLink(cs.plans)
	if err != nil {
		return nil, err
	}

	if !plan.HasAPICodes() {
		cs.logger.Warn("Plan without API codes, provider link is incomplete",
			zap.String("product_code", plan.ProductCode),
			zap.String("plan_name", plan.PlanName))
	}

	return &PlanLinks{
		Plan:              plan,
		ProviderSearchURL: provider,
		PortalURL:         portal,
		LinkAvailable:     plan.HasAPICodes(),
	}, nil
}

// RowLinks builds both links for a record already in hand, as the result
// table does for each row.
func (cs *CatalogService) RowLinks(plan models.PlanRecord) PlanLinks {
	return PlanLinks{
		Plan:              plan,
		ProviderSearchURL: links.ProviderSearchURL(plan.APIProductCode, plan.APIPlanCode, cs.now()),
		PortalURL:         links.PortalDetailURL(plan.ProductCode, plan.PlanName),
		LinkAvailable:     plan.HasAPICodes(),
	}
}

// Stats returns dataset totals.
func (cs *CatalogService) Stats() CatalogStats {
	return CatalogStats{
		Stats:           cs.plans.Stats(),
		TotalProcedures: cs.procedures.Len(),
		DatasetVersion:  cs.version,
	}
}

// ClearCache drops every cached result.
func (cs *CatalogService) ClearCache(ctx context.Context) error {
	if cs.cache == nil {
		return nil
	}
	return cs.cache.Clear(ctx)
}

// CacheStats returns the cache counters, or zeroes when caching is off.
func (cs *CatalogService) CacheStats(ctx context.Context) (*CacheStats, error) {
	if cs.cache == nil {
		return &CacheStats{}, nil
	}
	return cs.cache.GetStats(ctx)
}

// queryKind mirrors how ProcedureIndex.Search classifies a query: code
// prefix when the raw trimmed query is all digits, free text otherwise.
func queryKind(query string) string {
	if normalizer.IsDigits(strings.TrimSpace(query)) {
		return "code"
	}
	return "text"
}

func (cs *CatalogService) cacheKey(kind string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return cs.version + ":" + kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// cached returns the cached value for key or computes and stores it. Cache
// failures are logged and never surface to the caller.
func cached[T any](ctx context.Context, cs *CatalogService, key string, compute func() T) (T, bool) {
	if cs.cache == nil {
		return compute(), false
	}

	if payload, found, err := cs.cache.Get(ctx, key); err != nil {
		cs.logger.Warn("Cache get failed", zap.Error(err), zap.String("key", key))
	} else if found {
		var v T
		if err := json.Unmarshal(payload, &v); err == nil {
			return v, true
		}
		cs.logger.Warn("Dropping undecodable cache entry", zap.String("key", key))
	}

	v := compute()
	payload, err := json.Marshal(v)
	if err != nil {
		cs.logger.Warn("Cache encode failed", zap.Error(err))
		return v, false
	}
	if err := cs.cache.Set(ctx, key, payload); err != nil {
		cs.logger.Warn("Cache set failed", zap.Error(err), zap.String("key", key))
	}
	return v, false
}

func datasetVersion(ds *loader.Dataset) string {
	h := sha256.New()
	for _, p := range ds.Procedures {
		h.Write([]byte(p.Code + "\x00" + p.Description + "\x00"))
	}
	for _, p := range ds.Plans {
		b, _ := json.Marshal(p)
		h.Write(b)
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}
