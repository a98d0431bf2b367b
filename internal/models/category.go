package models

// Category identifies a kind of fiscal document. The set is closed.
type Category string

const (
	CategorySPED         Category = "sped"
	CategoryNFE          Category = "nfe"
	CategoryNFSTomado    Category = "nfs-tomado"
	CategoryNFSPrestado  Category = "nfs-prestado"
	CategoryNFCE         Category = "nfce"
	CategoryCTEEntrada   Category = "cte-entrada"
	CategoryCTESaida     Category = "cte-saida"
	CategoryCTECancelado Category = "cte-cancelado"
	CategoryPlanilha     Category = "planilha"
)

// CategoryInfo describes a category for display and validation. Extensions
// are lowercase, without the leading dot, in display order.
type CategoryInfo struct {
	ID          Category `json:"id"`
	Name        string   `json:"nome"`
	Description string   `json:"descricao"`
	Extensions  []string `json:"extensoes"`
}

var catalogue = []CategoryInfo{
	{ID: CategorySPED, Name: "SPED", Description: "Arquivos SPED Fiscal e Contribuições", Extensions: []string{"txt"}},
	{ID: CategoryNFE, Name: "NFE", Description: "Notas Fiscais Eletrônicas", Extensions: []string{"xml", "zip"}},
	{ID: CategoryNFSTomado, Name: "NFS Tomado", Description: "Notas Fiscais de Serviço Tomados (PDFs)", Extensions: []string{"pdf", "xml", "zip"}},
	{ID: CategoryNFSPrestado, Name: "NFS Prestado", Description: "Notas Fiscais de Serviço Prestados (PDFs)", Extensions: []string{"xml", "zip"}},
	{ID: CategoryNFCE, Name: "NFCE", Description: "Notas Fiscais de Consumidor Eletrônica", Extensions: []string{"xml", "zip"}},
	{ID: CategoryCTEEntrada, Name: "CTE Entrada", Description: "Conhecimentos de Transporte Eletrônico de Entrada", Extensions: []string{"xml", "zip"}},
	{ID: CategoryCTESaida, Name: "CTE Saída", Description: "Conhecimentos de Transporte Eletrônico de Saída", Extensions: []string{"xml", "zip"}},
	{ID: CategoryCTECancelado, Name: "CTE Cancelado", Description: "Conhecimentos de Transporte Eletrônico Cancelados", Extensions: []string{"xml", "zip"}},
	{ID: CategoryPlanilha, Name: "Planilhas", Description: "Planilhas Excel de controle", Extensions: []string{"csv", "xlsx"}},
}

// Catalogue returns a copy of every category in display order.
func Catalogue() []CategoryInfo {
	out := make([]CategoryInfo, len(catalogue))
	for i, info := range catalogue {
		info.Extensions = append([]string(nil), info.Extensions...)
		out[i] = info
	}
	return out
}

// IsCategory reports whether id names a catalogue entry.
func IsCategory(id string) bool {
	for _, info := range catalogue {
		if string(info.ID) == id {
			return true
		}
	}
	return false
}
