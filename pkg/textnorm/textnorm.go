package textnorm

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Clean recorta espacios y normaliza a NFC, para que un texto escrito con acento combinado
// y con carácter precompuesto se guarden y comparen igual.
func Clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Len longitud en runas (lo que el usuario percibe como caracteres) tras Clean.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
