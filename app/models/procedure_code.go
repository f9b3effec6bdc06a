package models

// ProcedureCode is one row of the TUSS table: a procedure code and its description
type ProcedureCode struct {
	Code        string `bson:"codigo" json:"code"`           // decimal digits
	Description string `bson:"descricao" json:"description"` // free text, may carry accents
}
