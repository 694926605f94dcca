package filters

import (
	"time"

	"leaguerats/internal/stores/matchstore"
	queuevalues "leaguerats/pkg/riotvalues/queue"
)

// URI params for the match endpoints.
type MatchURIParams struct {
	MatchID string `uri:"matchId" binding:"required"`
}

// Query params for the match history.
type MatchHistoryParams struct {
	Start     int    `form:"start,default=0" binding:"omitempty,min=0"`
	Count     int    `form:"count,default=20" binding:"omitempty,min=1,max=100"`
	Queue     string `form:"queue" binding:"omitempty,oneof=NORMAL SOLOQ FLEXQ ARAM"`
	Type      string `form:"type"`
	StartTime int64  `form:"startTime" binding:"omitempty,min=0"`
	EndTime   int64  `form:"endTime" binding:"omitempty,min=0"`
}

// Query params for fetching several matches at once.
type MatchesParams struct {
	IDs []string `form:"ids" binding:"required,min=1,max=100"`
}

// Convert the query into the store options. Times are epoch seconds.
func (q *MatchHistoryParams) AsOptions() matchstore.HistoryOptions {
	opts := matchstore.HistoryOptions{
		Start: q.Start,
		Count: q.Count,
		Queue: queuevalues.Type(q.Queue),
		Type:  q.Type,
	}
	if q.StartTime > 0 {
		opts.StartTime = time.Unix(q.StartTime, 0)
	}
	if q.EndTime > 0 {
		opts.EndTime = time.Unix(q.EndTime, 0)
	}
	return opts
}
