package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/descobre-saude/app/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileSource loads the datasets from two JSON or YAML files holding arrays of
// raw records. The format is picked from the file extension.
type FileSource struct {
	ProceduresPath string
	PlansPath      string
	logger         *zap.Logger
}

// NewFileSource creates a FileSource.
func NewFileSource(proceduresPath, plansPath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		ProceduresPath: proceduresPath,
		PlansPath:      plansPath,
		logger:         logger,
	}
}

// Load reads both files.
func (fs *FileSource) Load(ctx context.Context) (*Dataset, error) {
	var rawProcedures []rawProcedure
	if err := decodeFile(fs.ProceduresPath, &rawProcedures); err != nil {
		return nil, fmt.Errorf("load procedures: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rawPlans []rawPlan
	if err := decodeFile(fs.PlansPath, &rawPlans); err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}

	ds := &Dataset{
		Procedures: make([]models.ProcedureCode, len(rawProcedures)),
		Plans:      make([]models.PlanRecord, len(rawPlans)),
	}
	for i, r := range rawProcedures {
		ds.Procedures[i] = r.toModel()
	}
	for i, r := range rawPlans {
		ds.Plans[i] = r.toModel()
	}

	fs.logger.Info("Loaded dataset files",
		zap.String("procedures_path", fs.ProceduresPath),
		zap.String("plans_path", fs.PlansPath),
		zap.Int("procedures", len(ds.Procedures)),
		zap.Int("plans", len(ds.Plans)))

	return ds, nil
}

func decodeFile(path string, v interface{}) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, v)
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
