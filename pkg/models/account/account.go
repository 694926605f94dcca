package account

import "leaguerats/pkg/models/timestamp"

// Account is a player's riot identity on a region.
type Account struct {
	GameName string   `json:"gameName"`
	TagLine  string   `json:"tagLine"`
	Puuid    string   `json:"puuid"`
	Region   string   `json:"region"`
	Summoner Summoner `json:"summoner"`
}

// Summoner is the per-region in-game profile attached to an account.
type Summoner struct {
	AccountID     string              `json:"accountId"`
	ProfileIconID int                 `json:"profileIconId"`
	ID            string              `json:"id"`
	SummonerLevel int                 `json:"summonerLevel"`
	RevisionDate  timestamp.Timestamp `json:"revisionDate"`
}

// RiotID returns the combined "name#tag" identifier.
func (a Account) RiotID() string {
	if a.TagLine == "" {
		return a.GameName
	}
	return a.GameName + "#" + a.TagLine
}

// User is a registered site user.
type User struct {
	Username string `json:"username"`
	Tag      string `json:"tag"`
}
