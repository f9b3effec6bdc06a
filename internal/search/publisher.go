// Package search mirrors the datasets into Meilisearch so other consumers can
// query them. The service itself never reads from Meilisearch.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/descobre-saude/app/models"
	"github.com/descobre-saude/internal/normalizer"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

const (
	// ProceduresIndex receives one document per TUSS code.
	ProceduresIndex = "tuss_codes"
	// PlansIndex receives one document per plan.
	PlansIndex = "plans"

	defaultBatchSize = 1000
)

// PublisherConfig holds the Meilisearch connection settings.
type PublisherConfig struct {
	Host      string
	APIKey    string
	Timeout   time.Duration
	BatchSize int
}

// Publisher pushes dataset snapshots to Meilisearch.
type Publisher struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	timeout   time.Duration
	batchSize int
}

// NewPublisher connects to Meilisearch and checks its health.
func NewPublisher(config PublisherConfig, logger *zap.Logger) (*Publisher, error) {
	client := meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey))

	health, err := client.Health()
	if err != nil {
		return nil, fmt.Errorf("cannot reach Meilisearch: %w", err)
	}
	logger.Info("Meilisearch reachable", zap.String("host", config.Host), zap.String("status", health.Status))

	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Publisher{
		client:    client,
		logger:    logger,
		timeout:   config.Timeout,
		batchSize: batchSize,
	}, nil
}

// Publish configures both indexes and uploads the documents. Document ids are
// dataset positions, since neither table has a unique key.
func (p *Publisher) Publish(ctx context.Context, procedures []models.ProcedureCode, plans []models.PlanRecord) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.configure(ProceduresIndex, &meilisearch.Settings{
		SearchableAttributes: []string{"code", "description", "description_normalized"},
		SortableAttributes:   []string{"code"},
	}); err != nil {
		return err
	}
	if err := p.configure(PlansIndex, &meilisearch.Settings{
		SearchableAttributes: []string{"productCode", "planName", "ansRegisteredName", "ansCode"},
		FilterableAttributes: []string{"productCode", "planName", "segment", "classification", "status"},
		SortableAttributes:   []string{"productCode", "planName"},
	}); err != nil {
		return err
	}

	if err := p.upload(ctx, ProceduresIndex, ProcedureDocuments(procedures)); err != nil {
		return err
	}
	if err := p.upload(ctx, PlansIndex, PlanDocuments(plans)); err != nil {
		return err
	}

	p.logger.Info("Published dataset to Meilisearch",
		zap.Int("procedures", len(procedures)),
		zap.Int("plans", len(plans)))
	return nil
}

func (p *Publisher) configure(indexName string, settings *meilisearch.Settings) error {
	task, err := p.client.Index(indexName).UpdateSettings(settings)
	if err != nil {
		return fmt.Errorf("configure index %s: %w", indexName, err)
	}
	p.logger.Debug("Index settings queued", zap.String("index", indexName), zap.Int64("task_uid", task.TaskUID))
	return nil
}

func (p *Publisher) upload(ctx context.Context, indexName string, documents []map[string]interface{}) error {
	index := p.client.Index(indexName)
	for _, batch := range Batches(documents, p.batchSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		task, err := index.AddDocuments(batch, "id")
		if err != nil {
			return fmt.Errorf("add documents to %s: %w", indexName, err)
		}
		p.logger.Debug("Queued document batch",
			zap.String("index", indexName),
			zap.Int("size", len(batch)),
			zap.Int64("task_uid", task.TaskUID))
	}
	return nil
}

// ProcedureDocuments converts procedures into Meilisearch documents.
func ProcedureDocuments(procedures []models.ProcedureCode) []map[string]interface{} {
	docs := make([]map[string]interface{}, len(procedures))
	for i, p := range procedures {
		docs[i] = map[string]interface{}{
			"id":                     i,
			"code":                   p.Code,
			"description":            p.Description,
			"description_normalized": normalizer.Normalize(p.Description),
		}
	}
	return docs
}

// PlanDocuments converts plans into Meilisearch documents.
func PlanDocuments(plans []models.PlanRecord) []map[string]interface{} {
	docs := make([]map[string]interface{}, len(plans))
	for i, p := range plans {
		docs[i] = map[string]interface{}{
			"id":                i,
			"productCode":       p.ProductCode,
			"planName":          p.PlanName,
			"ansCode":           p.ANSCode,
			"ansRegisteredName": p.ANSRegisteredName,
			"segment":           p.Segment,
			"classification":    p.Classification,
			"operatorCode":      p.OperatorCode,
			"operatorName":      p.OperatorName,
			"status":            p.Status,
			"apiProductCode":    p.APIProductCode,
			"apiPlanCode":       p.APIPlanCode,
		}
	}
	return docs
}

// Batches splits docs into chunks of at most size.
func Batches(docs []map[string]interface{}, size int) [][]map[string]interface{} {
	if size <= 0 {
		size = defaultBatchSize
	}
	var out [][]map[string]interface{}
	for i := 0; i < len(docs); i += size {
		end := i + size
		if end > len(docs) {
			end = len(docs)
		}
		out = append(out, docs[i:end])
	}
	return out
}
