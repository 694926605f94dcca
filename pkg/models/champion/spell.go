package champion

// Summoner spell ids and their asset names.
var SummonerSpells = map[int]string{
	21: "SummonerBarrier",
	1:  "SummonerBoost",
	14: "SummonerDot",
	3:  "SummonerExhaust",
	4:  "SummonerFlash",
	6:  "SummonerHaste",
	7:  "SummonerHeal",
	13: "SummonerMana",
	11: "SummonerSmite",
	32: "SummonerSnowball",
	12: "SummonerTeleport",
}
