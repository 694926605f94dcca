package filters

// URI params for the region rosters.
type ProRegionURIParams struct {
	Region string `uri:"region" binding:"required"`
}

// URI params for a team roster.
type TeamURIParams struct {
	Region string `uri:"region" binding:"required"`
	Team   string `uri:"team" binding:"required"`
}

// URI params for a single player of a team.
type TeamPlayerURIParams struct {
	Team string `uri:"team" binding:"required"`
	Name string `uri:"name" binding:"required"`
}

// URI params for the global name search.
type ProNameURIParams struct {
	Name string `uri:"name" binding:"required"`
}

// URI params for the stream lists.
type StreamURIParams struct {
	Status string `uri:"status" binding:"required,oneof=live not_live"`
}

// Query params for the history statistics.
type HistoryStatsParams struct {
	Amount int `form:"amount,default=20" binding:"omitempty,min=1,max=100"`
}

func (p *StreamURIParams) IsLive() bool {
	return p.Status == "live"
}
