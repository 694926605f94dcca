package match

import (
	"leaguerats/pkg/models/timestamp"
	queuevalues "leaguerats/pkg/riotvalues/queue"
)

// Perks are the rune selections of a participant.
type Perks struct {
	PerkIDs      []int `json:"perkIds"`
	PerkStyle    int   `json:"perkStyle"`
	PerkSubStyle int   `json:"perkSubStyle"`
}

type GameCustomization struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

// Participant of a game in progress.
type Participant struct {
	ChampionID               int                 `json:"championId"`
	Perks                    Perks               `json:"perks"`
	ProfileIconID            int                 `json:"profileIconId"`
	Bot                      bool                `json:"bot"`
	TeamID                   int                 `json:"teamId"`
	SummonerID               string              `json:"summonerId"`
	RiotID                   string              `json:"riotId"`
	GameName                 string              `json:"gameName"`
	TagLine                  string              `json:"tagLine"`
	Puuid                    string              `json:"puuid"`
	Spell1ID                 int                 `json:"spell1Id"`
	Spell2ID                 int                 `json:"spell2Id"`
	GameCustomizationObjects []GameCustomization `json:"gameCustomizationObjects"`
}

type BannedChampion struct {
	PickTurn   int `json:"pickTurn"`
	ChampionID int `json:"championId"`
	TeamID     int `json:"teamId"`
}

type Observers struct {
	EncryptionKey string `json:"encryptionKey"`
}

// ActiveGame is a live match snapshot.
type ActiveGame struct {
	GameID            int64               `json:"gameId"`
	GameType          string              `json:"gameType"`
	GameMode          string              `json:"gameMode"`
	MapID             int                 `json:"mapId"`
	GameLength        int                 `json:"gameLength"`
	PlatformID        string              `json:"platformId"`
	GameStartTime     timestamp.Timestamp `json:"gameStartTime"`
	GameQueueConfigID int                 `json:"gameQueueConfigId"`
	QueueType         queuevalues.Type    `json:"queueType"`
	Participants      []Participant       `json:"participants"`
	BannedChampions   []BannedChampion    `json:"bannedChampions"`
	Observers         Observers           `json:"observers"`
}

// Game types and modes accepted for live tracking.
const (
	GameTypeMatched = "MATCHED"
	GameModeClassic = "CLASSIC"
	GameModeARAM    = "ARAM"
)

// IsTrackable reports whether the game is a matched summoner's rift or aram game.
func (g ActiveGame) IsTrackable() bool {
	return g.GameType == GameTypeMatched && (g.GameMode == GameModeClassic || g.GameMode == GameModeARAM)
}

// Participant returns the participant with the given puuid.
func (g ActiveGame) Participant(puuid string) (Participant, bool) {
	for _, p := range g.Participants {
		if p.Puuid == puuid {
			return p, true
		}
	}
	return Participant{}, false
}
