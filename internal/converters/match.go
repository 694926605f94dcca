package converters

import (
	"leaguerats/pkg/models/match"
	queuevalues "leaguerats/pkg/riotvalues/queue"
	"strconv"
)

// MapActiveGame converts a live game payload.
func MapActiveGame(raw any) (match.ActiveGame, Defaults) {
	var defaults Defaults
	return mapActiveGame(newReader(raw, "", &defaults)), defaults
}

func mapActiveGame(r reader) match.ActiveGame {
	game := match.ActiveGame{
		GameID:            r.int64("gameId"),
		GameType:          r.str("gameType"),
		GameMode:          r.str("gameMode"),
		MapID:             r.int("mapId"),
		GameLength:        r.int("gameLength"),
		PlatformID:        r.str("platformId"),
		GameStartTime:     r.timestamp("gameStartTime"),
		GameQueueConfigID: r.int("gameQueueConfigId"),
		Participants:      []match.Participant{},
		BannedChampions:   []match.BannedChampion{},
		Observers: match.Observers{
			EncryptionKey: r.obj("observers").str("encryptionKey"),
		},
	}
	game.QueueType = queuevalues.TypeFor(game.GameQueueConfigID)

	for _, p := range r.objects("participants") {
		game.Participants = append(game.Participants, mapParticipant(p))
	}

	for _, b := range r.objects("bannedChampions") {
		game.BannedChampions = append(game.BannedChampions, match.BannedChampion{
			PickTurn:   b.int("pickTurn"),
			ChampionID: b.int("championId"),
			TeamID:     b.int("teamId"),
		})
	}

	return game
}

func mapParticipant(r reader) match.Participant {
	p := match.Participant{
		ChampionID:               r.int("championId"),
		Perks:                    mapPerks(r.obj("perks")),
		ProfileIconID:            r.int("profileIconId"),
		Bot:                      r.bool("bot"),
		TeamID:                   r.int("teamId"),
		SummonerID:               r.str("summonerId"),
		Puuid:                    r.str("puuid"),
		Spell1ID:                 r.int("spell1Id"),
		Spell2ID:                 r.int("spell2Id"),
		GameCustomizationObjects: []match.GameCustomization{},
	}

	// The riot id is the source of truth, split on the first '#'.
	if r.has("riotId") || !r.has("gameName") {
		p.RiotID = r.str("riotId")
		p.GameName, p.TagLine = splitRiotID(p.RiotID)
	} else {
		p.GameName = r.str("gameName")
		p.TagLine = r.str("tagLine")
		p.RiotID = p.GameName
		if p.TagLine != "" {
			p.RiotID += "#" + p.TagLine
		}
	}

	for _, c := range r.objects("gameCustomizationObjects") {
		p.GameCustomizationObjects = append(p.GameCustomizationObjects, match.GameCustomization{
			Category: c.str("category"),
			Content:  c.str("content"),
		})
	}

	return p
}

func mapPerks(r reader) match.Perks {
	return match.Perks{
		PerkIDs:      r.intList("perkIds"),
		PerkStyle:    r.int("perkStyle"),
		PerkSubStyle: r.int("perkSubStyle"),
	}
}

// MapMatchData converts a finished match payload.
func MapMatchData(raw any) (match.MatchData, Defaults) {
	var defaults Defaults
	return mapMatchData(newReader(raw, "", &defaults)), defaults
}

func mapMatchData(r reader) match.MatchData {
	metadata := r.obj("metadata")
	info := r.obj("info")

	data := match.MatchData{
		Metadata: match.Metadata{
			MatchID:      metadata.str("matchId"),
			Participants: metadata.strList("participants"),
		},
		Info: match.Info{
			EndOfGameResult:    info.str("endOfGameResult"),
			GameDuration:       info.int("gameDuration"),
			GameID:             info.int64("gameId"),
			GameMode:           info.str("gameMode"),
			GameName:           info.str("gameName"),
			GameStartTimestamp: info.timestamp("gameStartTimestamp"),
			GameType:           info.str("gameType"),
			GameVersion:        info.str("gameVersion"),
			MapID:              info.int("mapId"),
			Participants:       []match.ParticipantStats{},
			PlatformID:         info.str("platformId"),
			QueueID:            info.int("queueId"),
			Teams:              []match.Team{},
		},
	}

	for _, p := range info.objects("participants") {
		data.Info.Participants = append(data.Info.Participants, mapParticipantStats(p))
	}

	for _, t := range info.objects("teams") {
		data.Info.Teams = append(data.Info.Teams, mapTeam(t))
	}

	return data
}

func mapParticipantStats(r reader) match.ParticipantStats {
	stats := match.ParticipantStats{
		Kills:                          r.int("kills"),
		Assists:                        r.int("assists"),
		Deaths:                         r.int("deaths"),
		ChampLevel:                     r.int("champLevel"),
		ChampionID:                     r.int("championId"),
		ChampionName:                   r.str("championName"),
		GoldEarned:                     r.int("goldEarned"),
		DamageDealtToBuildings:         r.int("damageDealtToBuildings"),
		PhysicalDamageDealtToChampions: r.int("physicalDamageDealtToChampions"),
		PhysicalDamageTaken:            r.int("physicalDamageTaken"),
		MagicDamageDealtToChampions:    r.int("magicDamageDealtToChampions"),
		MagicDamageTaken:               r.int("magicDamageTaken"),
		TrueDamageDealtToChampions:     r.int("trueDamageDealtToChampions"),
		TrueDamageTaken:                r.int("trueDamageTaken"),
		NeutralMinionsKilled:           r.int("neutralMinionsKilled"),
		TotalMinionsKilled:             r.int("totalMinionsKilled"),
		ParticipantID:                  r.int("participantId"),
		Perks:                          mapMatchPerks(r.obj("perks")),
		Puuid:                          r.str("puuid"),
		RiotIDGameName:                 r.str("riotIdGameName"),
		RiotIDTagLine:                  r.strOf("riotIdTagline", "riotIdTagLine"),
		Summoner1ID:                    r.int("summoner1Id"),
		Summoner2ID:                    r.int("summoner2Id"),
		SummonerID:                     r.str("summonerId"),
		SummonerName:                   r.str("summonerName"),
		TeamID:                         r.int("teamId"),
		TeamPosition:                   r.str("teamPosition"),
		TotalHealsOnTeammates:          r.int("totalHealsOnTeammates"),
		VisionScore:                    r.int("visionScore"),
		Win:                            r.bool("win"),
	}

	for i := range stats.Items {
		stats.Items[i] = r.int("item" + strconv.Itoa(i))
	}

	return stats
}

// Match payloads nest perks as styles with selections, live games use flat ids.
func mapMatchPerks(r reader) match.Perks {
	if r.has("perkIds") {
		return mapPerks(r)
	}

	perks := match.Perks{PerkIDs: []int{}}
	for i, style := range r.objects("styles") {
		switch i {
		case 0:
			perks.PerkStyle = style.int("style")
		case 1:
			perks.PerkSubStyle = style.int("style")
		}
		for _, selection := range style.objects("selections") {
			perks.PerkIDs = append(perks.PerkIDs, selection.int("perk"))
		}
	}
	return perks
}

func mapTeam(r reader) match.Team {
	team := match.Team{
		Bans:   []match.Ban{},
		TeamID: r.int("teamId"),
		Win:    r.bool("win"),
	}

	for _, b := range r.objects("bans") {
		team.Bans = append(team.Bans, match.Ban{
			ChampionID: b.int("championId"),
			PickTurn:   b.int("pickTurn"),
		})
	}

	objectives := r.obj("objectives")
	team.Objectives = match.Objectives{
		Baron:      mapObjective(objectives.obj("baron")),
		Champion:   mapObjective(objectives.obj("champion")),
		Dragon:     mapObjective(objectives.obj("dragon")),
		Horde:      mapObjective(objectives.obj("horde")),
		Inhibitor:  mapObjective(objectives.obj("inhibitor")),
		RiftHerald: mapObjective(objectives.obj("riftHerald")),
		Tower:      mapObjective(objectives.obj("tower")),
	}

	return team
}

func mapObjective(r reader) match.Objective {
	return match.Objective{
		First: r.bool("first"),
		Kills: r.int("kills"),
	}
}
