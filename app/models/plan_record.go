package models

// PlanRecord is one plan of an insurance product as published by the operator.
// Records are loaded once and never mutated.
type PlanRecord struct {
	ProductCode       string `bson:"codProduto" json:"productCode"`
	PlanName          string `bson:"planoProduto" json:"planName"`
	ANSCode           string `bson:"planoANS" json:"ansCode"`
	ANSRegisteredName string `bson:"nomeRegistradoANS" json:"ansRegisteredName"`
	Segment           string `bson:"segmentacao" json:"segment"`
	Classification    string `bson:"classificacao" json:"classification"`
	OperatorCode      string `bson:"codOperadora" json:"operatorCode"`
	OperatorName      string `bson:"nomeOperadora" json:"operatorName"`
	Status            string `bson:"situacao" json:"status"`
	APIProductCode    string `bson:"codProdutoAPI" json:"apiProductCode"` // used only for outbound links
	APIPlanCode       string `bson:"codPlanoAPI" json:"apiPlanCode"`       // used only for outbound links
}

// Key returns the productCode + planName pair.
func (p PlanRecord) Key() PlanKey {
	return PlanKey{ProductCode: p.ProductCode, PlanName: p.PlanName}
}

// HasAPICodes reports whether both API codes are present, i.e. whether a
// provider-search link for this plan points somewhere meaningful.
func (p PlanRecord) HasAPICodes() bool {
	return p.APIProductCode != "" && p.APIPlanCode != ""
}

// PlanKey is the natural external key of a plan.
type PlanKey struct {
	ProductCode string `json:"productCode"`
	PlanName    string `json:"planName"`
}

// PlanFilter holds optional plan criteria. Empty fields impose no constraint.
type PlanFilter struct {
	ProductCode    string `json:"productCode,omitempty" form:"product_code"`
	PlanName       string `json:"planName,omitempty" form:"plan_name"`
	Segment        string `json:"segment,omitempty" form:"segment"`
	Classification string `json:"classification,omitempty" form:"classification"`
	Status         string `json:"status,omitempty" form:"status"`
	Search         string `json:"search,omitempty" form:"search"`
}

// IsEmpty reports whether no criterion is set.
func (f PlanFilter) IsEmpty() bool {
	return f == PlanFilter{}
}

// ProductGroup lists the distinct plan names offered under one product.
type ProductGroup struct {
	ProductCode string   `json:"productCode"`
	PlanNames   []string `json:"planNames"`
}
