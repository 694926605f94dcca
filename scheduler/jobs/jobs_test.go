package jobs

import (
	"context"
	"testing"

	"leaguerats/fetcher/requests"
	"leaguerats/internal/stores/matchstore"
	"leaguerats/internal/stores/proplayerstore"
	"leaguerats/internal/testutil"
	"leaguerats/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func expect(t *testing.T, client *testutil.MockSender, url string, status int, body string) {
	t.Helper()
	client.On("SendRequest", mock.Anything, requests.Get(url)).
		Return(testutil.JSONResponse(t, status, body)).Once()
}

func TestRefreshFeaturedGames(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedError error
	}{
		{name: "success", status: 200},
		{name: "backendFailure", status: 500, expectedError: errs.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(testutil.MockSender)
			matches := matchstore.NewMatchStore(&matchstore.MatchStoreDeps{Client: client, Logger: zerolog.Nop()})
			expect(t, client, "/v2/match/featured", tt.status, `[]`)

			err := RefreshFeaturedGames(context.Background(), matches, zerolog.Nop())
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			testutil.VerifyAllMocks(t, client)
		})
	}
}

func TestRefreshWatchedGamesWithoutPlayers(t *testing.T) {
	client := new(testutil.MockSender)
	matches := matchstore.NewMatchStore(&matchstore.MatchStoreDeps{Client: client, Logger: zerolog.Nop()})

	assert.NoError(t, RefreshWatchedGames(context.Background(), matches, zerolog.Nop()))
	client.AssertNotCalled(t, "SendRequest", mock.Anything, mock.Anything)
}

func TestRefreshLiveStreams(t *testing.T) {
	client := new(testutil.MockSender)
	pros := proplayerstore.NewProPlayerStore(&proplayerstore.ProPlayerStoreDeps{Client: client, Logger: zerolog.Nop()})

	expect(t, client, "/v2/pro-players/live-streams/live", 200, `{"faker": {"player": "Faker", "team": "T1", "twitch": "faker"}}`)
	expect(t, client, "/v2/pro-players/live-streams/not_live", 500, `{}`)

	err := RefreshLiveStreams(context.Background(), pros, zerolog.Nop())

	assert.ErrorIs(t, err, errs.ErrTransport)
	assert.Contains(t, pros.LiveStreams.Get(), "faker")
	testutil.VerifyAllMocks(t, client)
}
