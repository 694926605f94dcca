package converters

import (
	"leaguerats/pkg/models/account"
	"leaguerats/pkg/models/proplayer"
)

// MapProPlayer converts a roster entry.
func MapProPlayer(raw any) (proplayer.ProPlayer, Defaults) {
	var defaults Defaults
	return mapProPlayer(newReader(raw, "", &defaults)), defaults
}

func mapProPlayer(r reader) proplayer.ProPlayer {
	p := proplayer.ProPlayer{
		Player:      r.str("player"),
		Region:      r.str("region"),
		Role:        r.str("role"),
		Team:        r.str("team"),
		SocialMedia: map[string]string{},
	}

	// Legacy documents store a single account.
	if single, ok := r.data["puuid"].(string); ok {
		p.Puuid = []string{single}
	} else {
		p.Puuid = r.strList("puuid")
	}

	// Optional fields.
	if r.has("gameName") {
		p.GameName = r.str("gameName")
	}
	if r.has("tagLine") {
		p.TagLine = r.str("tagLine")
	}
	if r.has("socialMedia") {
		p.SocialMedia = r.strMap("socialMedia")
	}

	return p
}

// MapProActiveGame converts a pro live game, either {player, game} or a [player, game] pair.
func MapProActiveGame(raw any) (proplayer.ProActiveGame, Defaults) {
	var defaults Defaults

	if pair, ok := raw.([]any); ok {
		var player, game any
		if len(pair) > 0 {
			player = pair[0]
		}
		if len(pair) > 1 {
			game = pair[1]
		}
		raw = map[string]any{"player": player, "game": game}
	}

	r := newReader(raw, "", &defaults)
	return proplayer.ProActiveGame{
		Player: mapProPlayer(r.obj("player")),
		Game:   mapActiveGame(r.obj("game")),
	}, defaults
}

// MapBootcampAccount converts a flat bootcamp ladder row.
func MapBootcampAccount(raw any) (proplayer.BootcampAccount, Defaults) {
	var defaults Defaults
	r := newReader(raw, "", &defaults)

	return proplayer.BootcampAccount{
		Account:     accountFrom(r),
		LeagueEntry: mapLeagueEntry(r),
		Player:      r.str("player"),
		Team:        r.str("team"),
		Role:        r.str("role"),
	}, defaults
}

func accountFrom(r reader) account.Account {
	return account.Account{
		GameName: r.str("gameName"),
		TagLine:  r.str("tagLine"),
		Puuid:    r.str("puuid"),
		Region:   r.str("region"),
	}
}
