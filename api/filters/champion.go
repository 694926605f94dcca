package filters

import (
	"fmt"
	"strconv"
	"strings"
)

// URI params for the champion endpoints.
type ChampionURIParams struct {
	ChampionID int `uri:"championId" binding:"required,min=1"`
}

// Query params for the champion matches.
type ChampionMatchesParams struct {
	Amount int  `form:"amount,default=10" binding:"omitempty,min=1,max=100"`
	More   bool `form:"more"`
}

// Query params for the positions lookup.
type ChampionPositionsParams struct {
	IDs string `form:"ids" binding:"required"`
}

// Parse the comma separated champion ids.
func (q *ChampionPositionsParams) ParseIDs() ([]int, error) {
	var ids []int
	for _, part := range strings.Split(q.IDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid champion id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
