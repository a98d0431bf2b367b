package models

// Company is a client company documents are submitted for.
type Company struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"nome" json:"nome"`
	CNPJ string `db:"cnpj" json:"cnpj"`
}
