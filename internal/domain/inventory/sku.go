package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DeriveSKU genera el SKU de una variante a partir del nombre del producto y
// la etiqueta de la talla: "Camiseta Básica" + "M" -> "CAMISETA-BASICA-M".
// Se eliminan tildes y diacríticos (NFD + descarte de marcas) y todo carácter
// que no sea alfanumérico se colapsa a un guion.
func DeriveSKU(productName, sizeLabel string) string {
	base := slug(productName)
	size := slug(sizeLabel)
	if base == "" {
		base = "SKU"
	}
	if size == "" {
		return base
	}
	return base + "-" + size
}

// slug normaliza a mayúsculas ASCII separadas por guiones.
func slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}
	var b strings.Builder
	lastDash := true // evita guion inicial
	for _, r := range strings.ToUpper(ascii) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ResolveLabel arma la etiqueta que se congela en el libro de movimientos:
// el nombre del producto y, si aplica, la talla entre paréntesis.
func ResolveLabel(productName, sizeLabel string) string {
	if sizeLabel == "" {
		return productName
	}
	return productName + " (" + sizeLabel + ")"
}
