package champion

import (
	"leaguerats/pkg/models/match"
	"leaguerats/pkg/models/proplayer"
)

// Struct for holding a champion display name.
type ChampionName struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Struct for holding a player's progress on one champion.
type ChampionMastery struct {
	Puuid          string `json:"puuid"`
	ChampionID     int    `json:"championId"`
	ChampionLevel  int    `json:"championLevel"`
	ChampionPoints int    `json:"championPoints"`
}

// Aggregated results on a champion.
type Stats struct {
	Games   int `json:"games"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`
}

// Winrate in percent, 0 without games.
func (s Stats) Winrate() float64 {
	games := s.Wins + s.Losses
	if games == 0 {
		return 0
	}
	return float64(s.Wins) * 100 / float64(games)
}

// KDA ratio, deaths floored at one.
func (s Stats) KDA() float64 {
	return float64(s.Kills+s.Assists) / float64(max(s.Deaths, 1))
}

// A pro game played on a champion.
type ChampionMatch struct {
	Player proplayer.ProPlayer `json:"player"`
	Match  match.MatchData     `json:"match"`
	Enemy  int                 `json:"enemy"`
	Lane   string              `json:"lane"`
}
