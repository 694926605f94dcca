package converters

import (
	"leaguerats/pkg/models/champion"
	"strconv"
)

// MapChampionMastery converts a mastery payload.
func MapChampionMastery(raw any) (champion.ChampionMastery, Defaults) {
	var defaults Defaults
	r := newReader(raw, "", &defaults)

	return champion.ChampionMastery{
		Puuid:          r.str("puuid"),
		ChampionID:     r.int("championId"),
		ChampionLevel:  r.int("championLevel"),
		ChampionPoints: r.int("championPoints"),
	}, defaults
}

// MapChampionStats converts aggregated champion results.
func MapChampionStats(raw any) (champion.Stats, Defaults) {
	var defaults Defaults
	return mapStats(newReader(raw, "", &defaults)), defaults
}

func mapStats(r reader) champion.Stats {
	stats := champion.Stats{
		Wins:    r.int("wins"),
		Losses:  r.int("losses"),
		Kills:   r.int("kills"),
		Deaths:  r.int("deaths"),
		Assists: r.int("assists"),
	}

	// Older documents don't carry the game count.
	if r.has("games") {
		stats.Games = r.int("games")
	} else {
		stats.Games = stats.Wins + stats.Losses
	}

	return stats
}

// MapChampionMatch converts a pro game played on a champion.
func MapChampionMatch(raw any) (champion.ChampionMatch, Defaults) {
	var defaults Defaults
	r := newReader(raw, "", &defaults)

	m := champion.ChampionMatch{
		Player: mapProPlayer(r.obj("player")),
		Match:  mapMatchData(r.obj("match")),
	}

	// Both are optional upstream.
	if r.has("enemy") {
		m.Enemy = r.int("enemy")
	}
	if r.has("lane") {
		m.Lane = r.str("lane")
	}

	return m, defaults
}

// MapChampionNames converts the champion list keyed by numeric id.
func MapChampionNames(raw any) (map[int]champion.ChampionName, Defaults) {
	var defaults Defaults
	r := newReader(raw, "", &defaults)

	names := make(map[int]champion.ChampionName, len(r.data))
	for key := range r.data {
		id, err := strconv.Atoi(key)
		if err != nil {
			defaults = append(defaults, key)
			continue
		}

		entry := r.obj(key)
		names[id] = champion.ChampionName{
			Title: entry.str("title"),
			Value: entry.str("value"),
		}
	}

	return names, defaults
}

// MapChampionStatsByID converts statistics keyed by champion id.
func MapChampionStatsByID(raw any) (map[int]champion.Stats, Defaults) {
	var defaults Defaults
	r := newReader(raw, "", &defaults)

	stats := make(map[int]champion.Stats, len(r.data))
	for key := range r.data {
		id, err := strconv.Atoi(key)
		if err != nil {
			defaults = append(defaults, key)
			continue
		}
		stats[id] = mapStats(r.obj(key))
	}

	return stats, defaults
}

// MapChampionPositions converts the lane of each champion keyed by numeric id.
func MapChampionPositions(raw any) (map[int]string, Defaults) {
	var defaults Defaults
	r := newReader(raw, "", &defaults)

	positions := make(map[int]string, len(r.data))
	for key := range r.data {
		id, err := strconv.Atoi(key)
		if err != nil {
			defaults = append(defaults, key)
			continue
		}
		positions[id] = r.str(key)
	}

	return positions, defaults
}
