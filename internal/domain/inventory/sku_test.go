package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSKU(t *testing.T) {
	cases := []struct {
		name      string
		sizeLabel string
		want      string
	}{
		{"Camiseta Básica", "M", "CAMISETA-BASICA-M"},
		{"Pantalón Niño", "38", "PANTALON-NINO-38"},
		{"camiseta azul", "XL", "CAMISETA-AZUL-XL"},
		{"  Chaqueta   de cuero ", "L", "CHAQUETA-DE-CUERO-L"},
		{"Sueter (edición 2024)", "S", "SUETER-EDICION-2024-S"},
		{"Gorra", "", "GORRA"},
		{"", "M", "SKU-M"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveSKU(tc.name, tc.sizeLabel), "DeriveSKU(%q, %q)", tc.name, tc.sizeLabel)
	}
}

func TestResolveLabel(t *testing.T) {
	assert.Equal(t, "Camiseta Azul (M)", ResolveLabel("Camiseta Azul", "M"))
	assert.Equal(t, "Camiseta Azul", ResolveLabel("Camiseta Azul", ""))
}
