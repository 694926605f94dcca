package converters

import "leaguerats/pkg/models/league"

// MapLeagueEntry converts a ranked standing payload.
func MapLeagueEntry(raw any) (league.LeagueEntry, Defaults) {
	var defaults Defaults
	return mapLeagueEntry(newReader(raw, "", &defaults)), defaults
}

func mapLeagueEntry(r reader) league.LeagueEntry {
	entry := league.LeagueEntry{
		LeagueID:     r.str("leagueId"),
		SummonerID:   r.str("summonerId"),
		Puuid:        r.str("puuid"),
		QueueType:    r.str("queueType"),
		Tier:         r.str("tier"),
		Rank:         r.str("rank"),
		LeaguePoints: r.int("leaguePoints"),
		Wins:         r.int("wins"),
		Losses:       r.int("losses"),
		HotStreak:    r.bool("hotStreak"),
		Veteran:      r.bool("veteran"),
		FreshBlood:   r.bool("freshBlood"),
		Inactive:     r.bool("inactive"),
	}

	// Optional, only present during promotion series.
	if r.has("miniSeries") {
		series := r.obj("miniSeries")
		entry.MiniSeries = &league.MiniSeries{
			Target:   series.int("target"),
			Wins:     series.int("wins"),
			Losses:   series.int("losses"),
			Progress: series.str("progress"),
		}
	}

	return entry
}

// MapLeaderboardEntry converts a leaderboard row.
func MapLeaderboardEntry(raw any) (league.LeaderboardEntry, Defaults) {
	var defaults Defaults
	r := newReader(raw, "", &defaults)

	return league.LeaderboardEntry{
		GameName:     r.str("gameName"),
		TagLine:      r.str("tagLine"),
		Puuid:        r.str("puuid"),
		Rank:         r.int("rank"),
		LeaguePoints: r.int("leaguePoints"),
		Wins:         r.int("wins"),
		Losses:       r.int("losses"),
		League:       r.str("league"),
	}, defaults
}
