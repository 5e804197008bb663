package common

import (
	"go/token"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is the String() value of out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
// Characters that are not valid in Go identifiers are replaced with underscores.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return Identifier(path.Base(pkgPath))
}

// Identifier turns an arbitrary string into a valid Go identifier.
// Returns "_" for an empty result.
func Identifier(s string) string {
	var sb strings.Builder

	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				sb.WriteRune('_')
			}

			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}

	id := sb.String()
	if id == "" {
		return "_"
	}

	if token.IsKeyword(id) {
		return id + "_"
	}

	return id
}

// Exported returns name with its first letter upper-cased.
func Exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
