package services

import (
	"sort"
	"strings"

	"github.com/dmitrijs2005/factorg/internal/models"
)

// SortAdminCodes orders codes by cod_admin using natural ordering, so that
// "A2" sorts before "A10". The input slice is not modified.
func SortAdminCodes(codes []models.AdminCode) []models.AdminCode {
	out := make([]models.AdminCode, len(codes))
	copy(out, codes)
	sort.SliceStable(out, func(i, j int) bool {
		return NaturalLess(out[i].Code, out[j].Code)
	})
	return out
}

// NaturalLess compares a and b case-insensitively, treating runs of digits
// as numbers.
func NaturalLess(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			sj := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
