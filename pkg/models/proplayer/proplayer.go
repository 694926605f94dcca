package proplayer

import (
	"leaguerats/pkg/models/account"
	"leaguerats/pkg/models/league"
	"leaguerats/pkg/models/match"
	"strings"
)

// ProPlayer is an esports roster entry. One player may own several accounts.
type ProPlayer struct {
	Player      string            `json:"player"`
	GameName    string            `json:"gameName"`
	TagLine     string            `json:"tagLine"`
	Puuid       []string          `json:"puuid"`
	Region      string            `json:"region"`
	Role        string            `json:"role"`
	Team        string            `json:"team"`
	SocialMedia map[string]string `json:"socialMedia"`
}

// Key is the identity of a player inside the flat roster.
func (p ProPlayer) Key() string {
	return strings.ToUpper(p.Team) + "/" + strings.ToLower(p.Player)
}

// ProActiveGame is a live game of a tracked pro player.
type ProActiveGame struct {
	Player ProPlayer        `json:"player"`
	Game   match.ActiveGame `json:"game"`
}

// BootcampAccount is a pro account ranked on a bootcamp ladder.
type BootcampAccount struct {
	account.Account
	league.LeagueEntry
	Player string `json:"player"`
	Team   string `json:"team"`
	Role   string `json:"role"`
}

// AccountName maps an account to the pro behind it.
type AccountName struct {
	Player string `json:"player" mapstructure:"player"`
	Team   string `json:"team" mapstructure:"team"`
}

// Stream is a pro player's streaming channel.
type Stream struct {
	Player string `json:"player" mapstructure:"player"`
	Team   string `json:"team" mapstructure:"team"`
	Twitch string `json:"twitch" mapstructure:"twitch"`
}
