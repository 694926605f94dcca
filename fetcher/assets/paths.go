package assets

import (
	"strconv"
	"strings"
)

// Object key of a champion icon, by champion name.
func ChampionIconPath(name string) string {
	return championIconPrefix + name + iconExtension
}

// Object key of a rank icon. Tiers are stored lower case.
func RankIconPath(tier string) string {
	return rankIconPrefix + strings.ToLower(tier) + iconExtension
}

// Object key of a region icon.
func RegionIconPath(region string) string {
	return regionIconPrefix + strings.ToLower(region) + iconExtension
}

// Object key of a team logo. Teams are stored upper case.
func TeamLogoPath(team string) string {
	return teamLogoPrefix + strings.ToUpper(team) + iconExtension
}

// Object key of a player image.
func PlayerImagePath(player string) string {
	return playerImagePrefix + PlayerImageName(player) + iconExtension
}

// Normalized player name: lower case with the first space replaced.
func PlayerImageName(player string) string {
	return strings.Replace(strings.ToLower(player), " ", "_", 1)
}

// Object key of an item icon.
func ItemIconPath(id int) string {
	return itemIconPrefix + strconv.Itoa(id) + iconExtension
}

// Object key of a summoner spell icon, by spell name (SummonerFlash).
func SummonerSpellIconPath(name string) string {
	return summonerIconPrefix + name + iconExtension
}
