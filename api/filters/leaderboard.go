package filters

import "leaguerats/pkg/regions"

// URI params for the ladders.
type LeaderboardURIParams struct {
	Region string `uri:"region" binding:"required"`
	League string `uri:"league" binding:"required,oneof=challenger grandmaster master"`
}

// Query params for the ladder pages.
type LeaderboardQueryParams struct {
	Limit int  `form:"limit,default=50" binding:"omitempty,min=1"`
	More  bool `form:"more"`
}

func (p *LeaderboardURIParams) SelectRegion() regions.Select {
	return regions.Select(p.Region)
}

// Get the limit, clamped to the maximum page size.
func (q *LeaderboardQueryParams) PageSize() int {
	// Could use max on the form, but that would return a error.
	if q.Limit > 200 {
		return 200
	}
	return q.Limit
}
