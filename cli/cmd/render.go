package cmd

import (
	"fmt"
	"io"
	"strconv"

	"leaguerats/pkg/models/account"
	"leaguerats/pkg/models/champion"
	"leaguerats/pkg/models/league"
	"leaguerats/pkg/models/match"
	"leaguerats/pkg/models/proplayer"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func printAccounts(w io.Writer, accounts []account.Account) error {
	table := newTable(w)
	table.Header("RIOT ID", "REGION", "LEVEL", "PUUID")
	for _, acc := range accounts {
		table.Append(acc.RiotID(), acc.Region, strconv.Itoa(acc.Summoner.SummonerLevel), acc.Puuid)
	}
	return table.Render()
}

func printLeagueEntries(w io.Writer, entries []league.LeagueEntry, totalLP func(league.LeagueEntry) int) error {
	table := newTable(w)
	table.Header("QUEUE", "TIER", "RANK", "LP", "W", "L", "WR", "TOTAL LP")
	for _, e := range entries {
		table.Append(
			e.QueueType,
			e.Tier,
			e.Rank,
			strconv.Itoa(e.LeaguePoints),
			strconv.Itoa(e.Wins),
			strconv.Itoa(e.Losses),
			fmt.Sprintf("%.0f%%", e.Winrate()),
			strconv.Itoa(totalLP(e)),
		)
	}
	return table.Render()
}

func printMatchIDs(w io.Writer, ids []string) error {
	table := newTable(w)
	table.Header("#", "MATCH")
	for i, id := range ids {
		table.Append(strconv.Itoa(i+1), id)
	}
	return table.Render()
}

func printMatch(w io.Writer, data match.MatchData) error {
	info := data.Info
	fmt.Fprintf(w, "%s  |  %s  |  %dm%02ds\n\n",
		data.Metadata.MatchID, info.GameMode, info.GameDuration/60, info.GameDuration%60)

	table := newTable(w)
	table.Header("TEAM", "PLAYER", "CHAMPION", "K", "D", "A", "CS", "GOLD", "RESULT")
	for _, p := range info.Participants {
		result := "LOSS"
		if p.Win {
			result = "WIN"
		}
		name := p.RiotIDGameName
		if p.RiotIDTagLine != "" {
			name += "#" + p.RiotIDTagLine
		}
		table.Append(
			strconv.Itoa(p.TeamID),
			name,
			p.ChampionName,
			strconv.Itoa(p.Kills),
			strconv.Itoa(p.Deaths),
			strconv.Itoa(p.Assists),
			strconv.Itoa(p.TotalMinionsKilled+p.NeutralMinionsKilled),
			strconv.Itoa(p.GoldEarned),
			result,
		)
	}
	return table.Render()
}

func printActiveGames(w io.Writer, games []match.ActiveGame) error {
	table := newTable(w)
	table.Header("GAME", "MODE", "QUEUE", "TEAM", "PLAYER", "CHAMPION")
	for _, game := range games {
		for _, p := range game.Participants {
			table.Append(
				strconv.FormatInt(game.GameID, 10),
				game.GameMode,
				string(game.QueueType),
				strconv.Itoa(p.TeamID),
				p.RiotID,
				strconv.Itoa(p.ChampionID),
			)
		}
	}
	return table.Render()
}

func printProPlayers(w io.Writer, players []proplayer.ProPlayer) error {
	table := newTable(w)
	table.Header("PLAYER", "TEAM", "ROLE", "REGION", "RIOT ID")
	for _, p := range players {
		riotID := ""
		if p.GameName != "" {
			riotID = p.GameName + "#" + p.TagLine
		}
		table.Append(p.Player, p.Team, p.Role, p.Region, riotID)
	}
	return table.Render()
}

func printLeaderboard(w io.Writer, entries []league.LeaderboardEntry) error {
	table := newTable(w)
	table.Header("RANK", "PLAYER", "LP", "W", "L")
	for _, e := range entries {
		table.Append(
			strconv.Itoa(e.Rank),
			e.GameName+"#"+e.TagLine,
			strconv.Itoa(e.LeaguePoints),
			strconv.Itoa(e.Wins),
			strconv.Itoa(e.Losses),
		)
	}
	return table.Render()
}

func printChampions(w io.Writer, ids []int, names map[int]champion.ChampionName) error {
	table := newTable(w)
	table.Header("ID", "NAME", "KEY")
	for _, id := range ids {
		name := names[id]
		table.Append(strconv.Itoa(id), name.Title, name.Value)
	}
	return table.Render()
}
