package regions

import (
	"fmt"
	"leaguerats/pkg/errs"
	"strings"
)

// Static region tables. Adding a region is a table edit.
// Create the types for clarity.
type (
	// Select is the region code shown on region pickers (EUW, NA, ...).
	Select string
	// Continental is the coarse routing value (EUROPE, ASIA, ...).
	Continental string
	// Platform is the per-server value (EUW1, NA1, ...).
	Platform string
)

const (
	Americas Continental = "AMERICAS"
	Asia     Continental = "ASIA"
	Europe   Continental = "EUROPE"
	Esports  Continental = "ESPORTS"
)

// Selection codes in picker order.
var selectOrder = []Select{"EUW", "EUNE", "NA", "KR", "BR", "JP", "LAN", "LAS", "OCE", "PH", "RU", "SG", "TH", "TR", "TW", "VN", "ME"}

var importantRegions = []Select{"EUW", "NA", "KR"}

var continentalRegions = map[Select]Continental{
	"EUW":  Europe,
	"EUNE": Europe,
	"RU":   Europe,
	"TR":   Europe,
	"ME":   Europe,
	"KR":   Asia,
	"JP":   Asia,
	"OCE":  Asia,
	"PH":   Asia,
	"SG":   Asia,
	"TH":   Asia,
	"TW":   Asia,
	"VN":   Asia,
	"NA":   Americas,
	"LAN":  Americas,
	"LAS":  Americas,
	"BR":   Americas,
	// Esports-only, there is no platform server behind it.
	"CN": Esports,
}

var platformRegions = map[Select]Platform{
	"EUW":  "EUW1",
	"EUNE": "EUN1",
	"NA":   "NA1",
	"KR":   "KR",
	"BR":   "BR1",
	"JP":   "JP1",
	"LAN":  "LA1",
	"LAS":  "LA2",
	"OCE":  "OC1",
	"PH":   "PH2",
	"RU":   "RU",
	"SG":   "SG2",
	"TH":   "TH2",
	"TR":   "TR1",
	"TW":   "TW2",
	"VN":   "VN2",
	"ME":   "ME1",
}

// Inverse of platformRegions, built once.
var selectRegions = func() map[Platform]Select {
	inverse := make(map[Platform]Select, len(platformRegions))
	for sel, platform := range platformRegions {
		inverse[platform] = sel
	}
	return inverse
}()

// Normalize the region entry.
func normalize(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}

// ToContinental returns the continental routing value for a selection code.
func ToContinental(region Select) (Continental, error) {
	continental, ok := continentalRegions[Select(normalize(string(region)))]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidRegion, region)
	}
	return continental, nil
}

// ToPlatform returns the platform value for a selection code.
func ToPlatform(region Select) (Platform, error) {
	platform, ok := platformRegions[Select(normalize(string(region)))]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidRegion, region)
	}
	return platform, nil
}

// ToSelect returns the selection code for a platform value.
func ToSelect(platform Platform) (Select, error) {
	sel, ok := selectRegions[Platform(normalize(string(platform)))]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidRegion, platform)
	}
	return sel, nil
}

// Selectable lists the codes offered on region pickers.
func Selectable() []Select {
	return append([]Select(nil), selectOrder...)
}

// Important lists the regions highlighted first.
func Important() []Select {
	return append([]Select(nil), importantRegions...)
}

// PlatformsByContinental groups every platform under its routing value.
func PlatformsByContinental() map[Continental][]Platform {
	grouped := make(map[Continental][]Platform)
	for _, sel := range selectOrder {
		grouped[continentalRegions[sel]] = append(grouped[continentalRegions[sel]], platformRegions[sel])
	}
	return grouped
}
