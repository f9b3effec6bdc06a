// Package loader reads the procedure and plan datasets and maps the raw
// Portuguese field names into models. It is the only place that knows about
// the source format.
package loader

import (
	"context"
	"errors"

	"github.com/descobre-saude/app/models"
)

// ErrUnsupportedFormat is returned for dataset files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Dataset is the pair of tables the catalog is built from, in source order.
type Dataset struct {
	Procedures []models.ProcedureCode
	Plans      []models.PlanRecord
}

// Source produces a Dataset.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// rawProcedure mirrors one element of tuss.json.
type rawProcedure struct {
	Codigo    string `json:"codigo" yaml:"codigo"`
	Descricao string `json:"descricao" yaml:"descricao"`
}

// rawPlan mirrors one element of products.json.
type rawPlan struct {
	CodProduto        string `json:"codProduto" yaml:"codProduto"`
	PlanoProduto      string `json:"planoProduto" yaml:"planoProduto"`
	PlanoANS          string `json:"planoANS" yaml:"planoANS"`
	NomeRegistradoANS string `json:"nomeRegistradoANS" yaml:"nomeRegistradoANS"`
	Segmentacao       string `json:"segmentacao" yaml:"segmentacao"`
	Classificacao     string `json:"classificacao" yaml:"classificacao"`
	CodOperadora      string `json:"codOperadora" yaml:"codOperadora"`
	NomeOperadora     string `json:"nomeOperadora" yaml:"nomeOperadora"`
	Situacao          string `json:"situacao" yaml:"situacao"`
	CodProdutoAPI     string `json:"codProdutoAPI" yaml:"codProdutoAPI"`
	CodPlanoAPI       string `json:"codPlanoAPI" yaml:"codPlanoAPI"`
}

func (r rawProcedure) toModel() models.ProcedureCode {
	return models.ProcedureCode{Code: r.Codigo, Description: r.Descricao}
}

func (r rawPlan) toModel() models.PlanRecord {
	return models.PlanRecord{
		ProductCode:       r.CodProduto,
		PlanName:          r.PlanoProduto,
		ANSCode:           r.PlanoANS,
		ANSRegisteredName: r.NomeRegistradoANS,
		Segment:           r.Segmentacao,
		Classification:    r.Classificacao,
		OperatorCode:      r.CodOperadora,
		OperatorName:      r.NomeOperadora,
		Status:            r.Situacao,
		APIProductCode:    r.CodProdutoAPI,
		APIPlanCode:       r.CodPlanoAPI,
	}
}
