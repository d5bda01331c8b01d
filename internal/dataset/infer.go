package dataset

import "strings"

// numericThreshold is the share of non-null values that must parse as
// numbers before a column is classified numeric.
const numericThreshold = 0.8

var temporalNameTokens = []string{"date", "time"}

// inferColumns classifies every column of the raw data. Headers keep
// their declared order; roles follow the sampled values.
func inferColumns(headers []string, rows [][]string) []Column {
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = analyzeColumn(h, i, rows)
	}
	return cols
}

func analyzeColumn(name string, index int, rows [][]string) Column {
	col := Column{
		Name:     name,
		Role:     RoleCategorical,
		Temporal: hasTemporalName(name),
	}

	numeric := 0
	present := 0
	for _, row := range rows {
		var val string
		if index < len(row) {
			val = row[index]
		}
		if isNullMarker(val) {
			col.Missing++
			continue
		}
		present++
		if _, ok := parseNumeric(val); ok {
			numeric++
		}
	}

	if present > 0 && float64(numeric) >= float64(present)*numericThreshold {
		col.Role = RoleNumeric
	}
	return col
}

func hasTemporalName(name string) bool {
	lower := strings.ToLower(name)
	for _, tok := range temporalNameTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
