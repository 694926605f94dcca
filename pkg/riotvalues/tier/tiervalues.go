package tiervalues

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Default ladder, lowest first.
var DefaultTiers = []string{"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM", "EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER"}

// Tiers without divisions.
var apexTiers = []string{"MASTER", "GRANDMASTER", "CHALLENGER"}

var romanToNumber = map[string]int{
	"I":   1,
	"II":  2,
	"III": 3,
	"IV":  4,
}

var rankNames = []string{"I", "II", "III", "IV"}

const (
	tierWeight     = 1000
	divisionWeight = 100
)

// Table holds the ordered tier ladder used to weight league entries.
type Table struct {
	tiers []string
	index map[string]int
}

// NewTable builds a table from an ordered tier list, lowest tier first.
func NewTable(tiers []string) (*Table, error) {
	if len(tiers) == 0 {
		return nil, errors.New("tier list can't be empty")
	}

	table := &Table{index: make(map[string]int, len(tiers))}
	for _, tier := range tiers {
		tier = normalize(tier)
		if tier == "" {
			return nil, errors.New("tier names can't be empty")
		}
		if _, exists := table.index[tier]; exists {
			return nil, fmt.Errorf("duplicated tier %s", tier)
		}
		table.index[tier] = len(table.tiers)
		table.tiers = append(table.tiers, tier)
	}

	return table, nil
}

// Default returns the table for the current ranked ladder.
func Default() *Table {
	table, _ := NewTable(DefaultTiers)
	return table
}

// Tiers returns the ladder, lowest first.
func (t *Table) Tiers() []string {
	return slices.Clone(t.tiers)
}

// Index returns the position of a tier in the ladder.
func (t *Table) Index(tier string) (int, bool) {
	idx, ok := t.index[normalize(tier)]
	return idx, ok
}

// TotalLP combines tier, division and league points into one sortable value.
// tierIndex*1000 + (5-division)*100 + lp. Unknown tiers yield 0,
// unknown or absent divisions add nothing.
func (t *Table) TotalLP(tier string, rank string, lp int) int {
	tierIndex, exists := t.Index(tier)
	if !exists {
		return 0
	}

	total := tierIndex*tierWeight + lp

	if division, ok := romanToNumber[normalize(rank)]; ok {
		total += (5 - division) * divisionWeight
	}

	return total
}

// Inverse returns the closest tier and division for a total.
func (t *Table) Inverse(total int) string {
	if total < 0 {
		total = 0
	}

	tierIndex := min(total/tierWeight, len(t.tiers)-1)
	tier := t.tiers[tierIndex]

	// Early return if it's an elo without division.
	if slices.Contains(apexTiers, tier) {
		return tier
	}

	remaining := total - tierIndex*tierWeight
	step := min(max(remaining/divisionWeight, 1), 4)

	return fmt.Sprintf("%s %s", tier, rankNames[4-step])
}

// Normalize the tier or rank entry.
func normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
