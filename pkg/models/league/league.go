package league

// MiniSeries is a promotion series in progress.
type MiniSeries struct {
	Target   int    `json:"target"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Progress string `json:"progress"`
}

// LeagueEntry is a ranked standing on one queue.
type LeagueEntry struct {
	LeagueID     string      `json:"leagueId"`
	SummonerID   string      `json:"summonerId"`
	Puuid        string      `json:"puuid"`
	QueueType    string      `json:"queueType"`
	Tier         string      `json:"tier"`
	Rank         string      `json:"rank"`
	LeaguePoints int         `json:"leaguePoints"`
	Wins         int         `json:"wins"`
	Losses       int         `json:"losses"`
	HotStreak    bool        `json:"hotStreak"`
	Veteran      bool        `json:"veteran"`
	FreshBlood   bool        `json:"freshBlood"`
	Inactive     bool        `json:"inactive"`
	MiniSeries   *MiniSeries `json:"miniSeries,omitempty"`
}

// Winrate in percent, 0 without games.
func (e LeagueEntry) Winrate() float64 {
	games := e.Wins + e.Losses
	if games == 0 {
		return 0
	}
	return float64(e.Wins) * 100 / float64(games)
}

// LeaderboardEntry is a denormalized ranked listing row.
type LeaderboardEntry struct {
	GameName     string `json:"gameName"`
	TagLine      string `json:"tagLine"`
	Puuid        string `json:"puuid"`
	Rank         int    `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	League       string `json:"league"`
}
