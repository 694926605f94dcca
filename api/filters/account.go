package filters

import (
	"leaguerats/internal/stores/accountstore"
	"leaguerats/pkg/regions"
)

// URI params for the riot id lookup.
type RiotIDURIParams struct {
	Region   string `uri:"region" binding:"required"`
	GameName string `uri:"gameName" binding:"required"`
	TagLine  string `uri:"tagLine" binding:"required"`
}

// URI params of endpoints keyed by puuid.
type PuuidURIParams struct {
	Region string `uri:"region" binding:"required"`
	Puuid  string `uri:"puuid" binding:"required"`
}

// URI params for the all regions search and the saved accounts.
type AccountSearchURIParams struct {
	GameName string `uri:"gameName" binding:"required"`
	TagLine  string `uri:"tagLine" binding:"required"`
}

// URI params for the site user lookup.
type UserURIParams struct {
	Username string `uri:"username" binding:"required"`
	Tag      string `uri:"tag" binding:"required"`
}

func (p *RiotIDURIParams) AsLookup() accountstore.AccountLookup {
	return accountstore.AccountLookup{
		ByRiotID: &accountstore.RiotIDLookup{GameName: p.GameName, TagLine: p.TagLine},
		Region:   regions.Select(p.Region),
	}
}

func (p *PuuidURIParams) AsLookup() accountstore.AccountLookup {
	return accountstore.AccountLookup{
		ByPuuid: &accountstore.PuuidLookup{Puuid: p.Puuid},
		Region:  p.SelectRegion(),
	}
}

func (p *PuuidURIParams) SelectRegion() regions.Select {
	return regions.Select(p.Region)
}
