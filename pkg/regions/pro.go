package regions

import (
	"fmt"
	"leaguerats/pkg/errs"
	"slices"
	"strings"
)

// ProRegion is a professional league (LCK, LEC, ...).
type ProRegion string

// Leagues in display order.
var ProRegions = []ProRegion{"LCK", "LPL", "LCS", "LEC"}

var proRegionToSelect = map[ProRegion]Select{
	"LCK": "KR",
	"LCS": "NA",
	"LEC": "EUW",
	"LPL": "CN",
}

// Team tags per league.
var TeamsPerRegion = map[ProRegion][]string{
	"LCK": {"T1", "GENG", "DK", "DRX", "HLE", "DNF", "KT", "FOX", "BRO", "NS"},
	"LPL": {"AL", "BLG", "EDG", "FPX", "IG", "JDG", "LGD", "LNG", "NIP", "OMG", "RA", "RNG", "WE", "TES", "TT", "UP", "WBG"},
	"LCS": {"TL", "C9", "FLY", "DIG", "100", "SR", "DSG", "LYN"},
	"LEC": {"FNC", "G2", "GX", "KC", "MKOI", "RGE", "SK", "BDS", "TH", "VIT"},
}

var teamFullName = map[string]string{
	"T1":   "T1",
	"GENG": "Gen.G",
	"DK":   "Dplus KIA",
	"DRX":  "DRX",
	"HLE":  "Hanwha Life Esports",
	"DNF":  "DN Freecs",
	"KT":   "kt Rolster",
	"FOX":  "BNK FearX",
	"BRO":  "OKSavingsBank BRION",
	"NS":   "NongShim REDFORCE",
	"AL":   "Anyone's Legend",
	"BLG":  "Bilibili Gaming",
	"EDG":  "Edward Gaming",
	"FPX":  "FunPlus Phoenix",
	"IG":   "Invictus Gaming",
	"JDG":  "JD Gaming",
	"LGD":  "LGD Gaming",
	"LNG":  "LNG Esports",
	"NIP":  "Ninjas in Pyjamas",
	"OMG":  "Oh My God",
	"RA":   "Rare Atom",
	"RNG":  "Royal Never Give Up",
	"WE":   "Team WE",
	"TES":  "Top Esports",
	"TT":   "TT Gaming",
	"UP":   "Ultra Prime",
	"WBG":  "Weibo Gaming",
	"TL":   "Team Liquid",
	"C9":   "Cloud9",
	"FLY":  "FlyQuest",
	"DIG":  "Dignitas",
	"100":  "100 Thieves",
	"SR":   "Evil Geniuses",
	"DSG":  "Disguised",
	"LYN":  "Lyon Gaming",
	"FNC":  "Fnatic",
	"G2":   "G2 Esports",
	"GX":   "Excel Esports",
	"KC":   "Karmine Corp",
	"MKOI": "Movistar KOI",
	"RGE":  "Rogue",
	"SK":   "SK Gaming",
	"BDS":  "Team BDS",
	"TH":   "Team Heretics",
	"VIT":  "Team Vitality",
}

// ParseProRegion validates a league code.
func ParseProRegion(region string) (ProRegion, error) {
	pro := ProRegion(normalize(region))
	if _, ok := TeamsPerRegion[pro]; !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidRegion, region)
	}
	return pro, nil
}

// ProRegionToSelect returns the server region a league plays on.
func ProRegionToSelect(region ProRegion) (Select, error) {
	sel, ok := proRegionToSelect[ProRegion(normalize(string(region)))]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidRegion, region)
	}
	return sel, nil
}

// SelectToProRegion returns the league hosted on a server region.
func SelectToProRegion(region Select) (ProRegion, error) {
	sel := Select(normalize(string(region)))
	for pro, target := range proRegionToSelect {
		if target == sel {
			return pro, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errs.ErrInvalidRegion, region)
}

// ProRegionForTeam finds the league a team tag belongs to.
func ProRegionForTeam(team string) (ProRegion, bool) {
	team = strings.ToUpper(strings.TrimSpace(team))
	for _, region := range ProRegions {
		if slices.Contains(TeamsPerRegion[region], team) {
			return region, true
		}
	}
	return "", false
}

// TeamFullName returns the display name of a team, or the tag itself.
func TeamFullName(team string) string {
	if name, ok := teamFullName[strings.ToUpper(team)]; ok {
		return name
	}
	return team
}

// AllTeams lists every team tag across leagues.
func AllTeams() []string {
	var teams []string
	for _, region := range ProRegions {
		teams = append(teams, TeamsPerRegion[region]...)
	}
	return teams
}
