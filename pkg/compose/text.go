package compose

import "strconv"

const xhtmlNS = "http://www.w3.org/1999/xhtml"

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// sizeOr returns v when positive, else def.
func sizeOr(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
