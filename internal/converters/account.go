package converters

import "leaguerats/pkg/models/account"

// Keys that only exist when a summoner profile is attached to the payload.
var summonerKeys = []string{"accountId", "id", "profileIconId", "summonerLevel", "revisionDate"}

// MapAccount converts an account payload, with or without summoner data.
func MapAccount(raw any) (account.Account, Defaults) {
	var defaults Defaults
	r := newReader(raw, "", &defaults)

	acc := account.Account{
		Puuid:  r.str("puuid"),
		Region: r.str("region"),
	}

	// Some payloads only carry the combined riot id.
	if !r.has("gameName") && r.has("riotId") {
		acc.GameName, acc.TagLine = splitRiotID(r.str("riotId"))
	} else {
		acc.GameName = r.str("gameName")
		acc.TagLine = r.str("tagLine")
	}

	switch {
	case r.has("summoner"):
		acc.Summoner = mapSummoner(r.obj("summoner"))
	case hasAny(r, summonerKeys...):
		acc.Summoner = mapSummoner(r)
	}

	return acc, defaults
}

// MapSummoner converts a summoner profile payload.
func MapSummoner(raw any) (account.Summoner, Defaults) {
	var defaults Defaults
	return mapSummoner(newReader(raw, "", &defaults)), defaults
}

func mapSummoner(r reader) account.Summoner {
	return account.Summoner{
		AccountID:     r.str("accountId"),
		ProfileIconID: r.int("profileIconId"),
		ID:            r.str("id"),
		SummonerLevel: r.int("summonerLevel"),
		RevisionDate:  r.timestamp("revisionDate"),
	}
}

// MapUser converts a registered user document.
func MapUser(raw any) (account.User, Defaults) {
	var defaults Defaults
	r := newReader(raw, "", &defaults)

	return account.User{
		Username: r.str("username"),
		Tag:      r.str("tag"),
	}, defaults
}

func hasAny(r reader, keys ...string) bool {
	for _, key := range keys {
		if r.has(key) {
			return true
		}
	}
	return false
}
