package stores

import (
	"context"
	"net/url"
	"testing"

	"leaguerats/fetcher/requests"
	"leaguerats/internal/converters"
	"leaguerats/internal/testutil"
	"leaguerats/pkg/errs"
	"leaguerats/pkg/models/league"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	tests := []struct {
		name     string
		query    url.Values
		segments []string
		expected string
	}{
		{
			name:     "plain path",
			segments: []string{"v2", "league", "abc"},
			expected: "/v2/league/abc",
		},
		{
			name:     "escaped segment and query",
			query:    url.Values{"region": {"EUW"}, "amount": {"10"}},
			segments: []string{"v2", "pro-players", "history-stats", "T1", "Faker Jr"},
			expected: "/v2/pro-players/history-stats/T1/Faker%20Jr?amount=10&region=EUW",
		},
		{
			name:     "empty query",
			query:    url.Values{},
			segments: []string{"v2", "runes"},
			expected: "/v2/runes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, URL(tt.query, tt.segments...))
		})
	}
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	request := requests.Get("/v2/league/abc")

	tests := []struct {
		name          string
		response      *requests.Response
		expectedError error
		expectedLen   int
	}{
		{
			name:        "ok",
			response:    testutil.JSONResponse(t, 200, `[{"tier":"GOLD","rank":"II","leaguePoints":10}]`),
			expectedLen: 1,
		},
		{
			name:          "not found",
			response:      testutil.JSONResponse(t, 404, `{"detail":"missing"}`),
			expectedError: errs.ErrNotFound,
		},
		{
			name:          "transport failure",
			response:      nil,
			expectedError: errs.ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(testutil.MockSender)
			client.On("SendRequest", mock.Anything, request).Return(tt.response)

			mapper := func(raw any) ([]league.LeagueEntry, converters.Defaults) {
				return converters.MapList(raw, converters.MapLeagueEntry)
			}
			entries, err := Fetch(ctx, client, zerolog.Nop(), request, mapper)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, entries)
			} else {
				require.NoError(t, err)
				assert.Len(t, entries, tt.expectedLen)
			}
			testutil.VerifyAllMocks(t, client)
		})
	}
}

func TestClone(t *testing.T) {
	original := map[int]string{1: "a"}
	copied := Clone(original)
	copied[2] = "b"

	assert.Len(t, original, 1)
	assert.Len(t, copied, 2)
}
