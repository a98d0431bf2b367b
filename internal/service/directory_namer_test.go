package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteDir(t *testing.T) {
	cases := map[string]string{
		"Café & Cia S/A":            "Cafe-Cia-SA",
		"ACME":                      "ACME",
		"São João Comércio Ltda.":   "Sao-Joao-Comercio-Ltda",
		"Padaria   Pão  Quente":     "Padaria-Pao-Quente",
		"__Indústria__de__Peças__":  "Industria_de_Pecas",
		"Auto-Peças Irmãos":         "Auto-Pecas-Irmaos",
		"&&&":                       "",
		"":                          "",
		"___":                       "",
		"Tabs\tand\nnewlines":       "Tabs-and-newlines",
	}
	for input, want := range cases {
		assert.Equal(t, want, RemoteDir(input), input)
	}
}

func TestRemoteDirIsIdempotent(t *testing.T) {
	inputs := []string{"Café & Cia S/A", "  Espaços  nas pontas ", "a__b", "Ñandú_ S.A.", "x - y"}
	for _, input := range inputs {
		once := RemoteDir(input)
		assert.Equal(t, once, RemoteDir(once), input)
	}
}
