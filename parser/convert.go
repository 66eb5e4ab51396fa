package parser

import "strconv"

// atoi and atof convert INT/FLOAT lexemes. The lexer guarantees these
// contain only digits (and, for FLOAT, a single '.'), so the strconv error
// is unreachable and intentionally discarded.
func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
