package match

import "leaguerats/pkg/models/timestamp"

type Metadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

// ParticipantStats holds the end of game line of a participant.
type ParticipantStats struct {
	Kills                          int    `json:"kills"`
	Assists                        int    `json:"assists"`
	Deaths                         int    `json:"deaths"`
	ChampLevel                     int    `json:"champLevel"`
	ChampionID                     int    `json:"championId"`
	ChampionName                   string `json:"championName"`
	GoldEarned                     int    `json:"goldEarned"`
	DamageDealtToBuildings         int    `json:"damageDealtToBuildings"`
	Items                          [7]int `json:"items"`
	PhysicalDamageDealtToChampions int    `json:"physicalDamageDealtToChampions"`
	PhysicalDamageTaken            int    `json:"physicalDamageTaken"`
	MagicDamageDealtToChampions    int    `json:"magicDamageDealtToChampions"`
	MagicDamageTaken               int    `json:"magicDamageTaken"`
	TrueDamageDealtToChampions     int    `json:"trueDamageDealtToChampions"`
	TrueDamageTaken                int    `json:"trueDamageTaken"`
	NeutralMinionsKilled           int    `json:"neutralMinionsKilled"`
	TotalMinionsKilled             int    `json:"totalMinionsKilled"`
	ParticipantID                  int    `json:"participantId"`
	Perks                          Perks  `json:"perks"`
	Puuid                          string `json:"puuid"`
	RiotIDGameName                 string `json:"riotIdGameName"`
	RiotIDTagLine                  string `json:"riotIdTagLine"`
	Summoner1ID                    int    `json:"summoner1Id"`
	Summoner2ID                    int    `json:"summoner2Id"`
	SummonerID                     string `json:"summonerId"`
	SummonerName                   string `json:"summonerName"`
	TeamID                         int    `json:"teamId"`
	TeamPosition                   string `json:"teamPosition"`
	TotalHealsOnTeammates          int    `json:"totalHealsOnTeammates"`
	VisionScore                    int    `json:"visionScore"`
	Win                            bool   `json:"win"`
}

type Ban struct {
	ChampionID int `json:"championId"`
	PickTurn   int `json:"pickTurn"`
}

type Objective struct {
	First bool `json:"first"`
	Kills int  `json:"kills"`
}

type Objectives struct {
	Baron      Objective `json:"baron"`
	Champion   Objective `json:"champion"`
	Dragon     Objective `json:"dragon"`
	Horde      Objective `json:"horde"`
	Inhibitor  Objective `json:"inhibitor"`
	RiftHerald Objective `json:"riftHerald"`
	Tower      Objective `json:"tower"`
}

type Team struct {
	Bans       []Ban      `json:"bans"`
	Objectives Objectives `json:"objectives"`
	TeamID     int        `json:"teamId"`
	Win        bool       `json:"win"`
}

type Info struct {
	EndOfGameResult    string              `json:"endOfGameResult"`
	GameDuration       int                 `json:"gameDuration"`
	GameID             int64               `json:"gameId"`
	GameMode           string              `json:"gameMode"`
	GameName           string              `json:"gameName"`
	GameStartTimestamp timestamp.Timestamp `json:"gameStartTimestamp"`
	GameType           string              `json:"gameType"`
	GameVersion        string              `json:"gameVersion"`
	MapID              int                 `json:"mapId"`
	Participants       []ParticipantStats  `json:"participants"`
	PlatformID         string              `json:"platformId"`
	QueueID            int                 `json:"queueId"`
	Teams              []Team              `json:"teams"`
}

// MatchData is a finished, immutable match record.
type MatchData struct {
	Metadata Metadata `json:"metadata"`
	Info     Info     `json:"info"`
}

// ItemIDs returns every non empty item slot across participants.
func (m MatchData) ItemIDs() []int {
	var ids []int
	for _, p := range m.Info.Participants {
		for _, id := range p.Items {
			if id != 0 {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
