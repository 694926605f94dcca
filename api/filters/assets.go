package filters

import "leaguerats/pkg/regions"

// URI params for a region icon.
type RegionURIParams struct {
	Region string `uri:"region" binding:"required"`
}

// Query params for the item icons.
type ItemIconsParams struct {
	IDs []int `form:"ids" binding:"required,min=1"`
}

func (p *RegionURIParams) SelectRegion() regions.Select {
	return regions.Select(p.Region)
}
