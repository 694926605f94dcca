package converters

import (
	"leaguerats/pkg/models/timestamp"
	queuevalues "leaguerats/pkg/riotvalues/queue"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createActiveGamePayload() map[string]any {
	return map[string]any{
		"gameId":            float64(7_000_000_001),
		"gameType":          "MATCHED",
		"gameMode":          "CLASSIC",
		"mapId":             float64(11),
		"gameLength":        float64(600),
		"platformId":        "KR",
		"gameStartTime":     float64(1_715_000_000_123),
		"gameQueueConfigId": float64(420),
		"observers":         map[string]any{"encryptionKey": "key"},
		"bannedChampions": []any{
			map[string]any{"pickTurn": float64(1), "championId": float64(157), "teamId": float64(100)},
		},
		"participants": []any{
			map[string]any{
				"championId": float64(7),
				"perks": map[string]any{
					"perkIds":      []any{float64(8112), float64(8139)},
					"perkStyle":    float64(8100),
					"perkSubStyle": float64(8300),
				},
				"profileIconId":            float64(6),
				"bot":                      false,
				"teamId":                   float64(100),
				"summonerId":               "s1",
				"riotId":                   "Hide on bush#KR1",
				"puuid":                    "p1",
				"spell1Id":                 float64(4),
				"spell2Id":                 float64(14),
				"gameCustomizationObjects": []any{},
			},
		},
	}
}

func TestMapActiveGame(t *testing.T) {
	game, defaults := MapActiveGame(createActiveGamePayload())

	assert.True(t, defaults.Empty(), "defaults: %v", defaults)
	assert.Equal(t, int64(7_000_000_001), game.GameID)
	assert.Equal(t, queuevalues.SoloQ, game.QueueType)
	assert.Equal(t, timestamp.Timestamp{Seconds: 1_715_000_000}, game.GameStartTime)
	assert.True(t, game.IsTrackable())

	require.Len(t, game.Participants, 1)
	p := game.Participants[0]
	assert.Equal(t, "Hide on bush", p.GameName)
	assert.Equal(t, "KR1", p.TagLine)
	assert.Equal(t, []int{8112, 8139}, p.Perks.PerkIDs)

	found, ok := game.Participant("p1")
	assert.True(t, ok)
	assert.Equal(t, 7, found.ChampionID)

	require.Len(t, game.BannedChampions, 1)
	assert.Equal(t, 157, game.BannedChampions[0].ChampionID)
	assert.Equal(t, "key", game.Observers.EncryptionKey)
}

func TestMapActiveGameUnknownQueue(t *testing.T) {
	payload := createActiveGamePayload()
	payload["gameQueueConfigId"] = float64(1700)

	game, _ := MapActiveGame(payload)
	assert.Equal(t, queuevalues.Normal, game.QueueType)
}

func TestMapActiveGameEmpty(t *testing.T) {
	game, defaults := MapActiveGame(map[string]any{})

	assert.NotEmpty(t, defaults)
	assert.Contains(t, defaults, "participants")
	assert.Contains(t, defaults, "observers")
	assert.NotNil(t, game.Participants)
	assert.NotNil(t, game.BannedChampions)
	assert.Equal(t, queuevalues.Normal, game.QueueType)
	assert.False(t, game.IsTrackable())
}

func TestMapParticipantWithoutTag(t *testing.T) {
	payload := createActiveGamePayload()
	participant := payload["participants"].([]any)[0].(map[string]any)
	participant["riotId"] = "NoTag"

	game, _ := MapActiveGame(payload)
	assert.Equal(t, "NoTag", game.Participants[0].GameName)
	assert.Equal(t, "", game.Participants[0].TagLine)
}

func TestMapParticipantSplitNames(t *testing.T) {
	payload := createActiveGamePayload()
	participant := payload["participants"].([]any)[0].(map[string]any)
	delete(participant, "riotId")
	participant["gameName"] = "Chovy"
	participant["tagLine"] = "GEN"

	game, _ := MapActiveGame(payload)
	assert.Equal(t, "Chovy#GEN", game.Participants[0].RiotID)
	assert.Equal(t, "Chovy", game.Participants[0].GameName)
}

func TestMapMatchData(t *testing.T) {
	raw := map[string]any{
		"metadata": map[string]any{
			"matchId":      "KR_1",
			"participants": []any{"p1", "p2"},
		},
		"info": map[string]any{
			"gameStartTimestamp": float64(1_715_000_000_999),
			"gameDuration":       float64(1800),
			"queueId":            float64(420),
			"participants": []any{
				map[string]any{
					"kills":         float64(10),
					"item0":         float64(3031),
					"item6":         float64(3340),
					"riotIdTagline": "KR1",
					"perks": map[string]any{
						"styles": []any{
							map[string]any{"style": float64(8000), "selections": []any{map[string]any{"perk": float64(8005)}}},
							map[string]any{"style": float64(8200), "selections": []any{map[string]any{"perk": float64(8226)}}},
						},
					},
				},
			},
			"teams": []any{
				map[string]any{
					"teamId": float64(100),
					"win":    true,
					"bans":   []any{map[string]any{"championId": float64(1), "pickTurn": float64(2)}},
					"objectives": map[string]any{
						"baron": map[string]any{"first": true, "kills": float64(2)},
					},
				},
			},
		},
	}

	data, defaults := MapMatchData(raw)

	assert.NotEmpty(t, defaults)
	assert.Equal(t, "KR_1", data.Metadata.MatchID)
	assert.Equal(t, []string{"p1", "p2"}, data.Metadata.Participants)
	assert.Equal(t, timestamp.Timestamp{Seconds: 1_715_000_000}, data.Info.GameStartTimestamp)

	require.Len(t, data.Info.Participants, 1)
	p := data.Info.Participants[0]
	assert.Equal(t, 10, p.Kills)
	assert.Equal(t, [7]int{3031, 0, 0, 0, 0, 0, 3340}, p.Items)
	assert.Equal(t, "KR1", p.RiotIDTagLine)
	assert.Equal(t, 8000, p.Perks.PerkStyle)
	assert.Equal(t, 8200, p.Perks.PerkSubStyle)
	assert.Equal(t, []int{8005, 8226}, p.Perks.PerkIDs)
	assert.Contains(t, defaults, "info.participants[0].deaths")
	assert.Equal(t, []int{3031, 3340}, data.ItemIDs())

	require.Len(t, data.Info.Teams, 1)
	team := data.Info.Teams[0]
	assert.True(t, team.Objectives.Baron.First)
	assert.Equal(t, 2, team.Objectives.Baron.Kills)
	assert.Equal(t, 0, team.Objectives.Dragon.Kills)
	assert.Contains(t, defaults, "info.teams[0].objectives.dragon")
}

// Every shape of garbage still yields a usable record.
func TestMapMatchDataNeverFails(t *testing.T) {
	inputs := []any{
		nil,
		"match",
		float64(3),
		[]any{1, 2},
		map[string]any{"metadata": "x", "info": []any{}},
		map[string]any{"info": map[string]any{"participants": []any{nil, "p"}, "teams": []any{map[string]any{"objectives": 5}}}},
	}

	for _, input := range inputs {
		assert.NotPanics(t, func() {
			data, defaults := MapMatchData(input)

			assert.NotEmpty(t, defaults)
			assert.NotNil(t, data.Metadata.Participants)
			assert.NotNil(t, data.Info.Participants)
			assert.NotNil(t, data.Info.Teams)
			for _, team := range data.Info.Teams {
				assert.NotNil(t, team.Bans)
			}
		})
	}
}
