package main

import (
	"context"
	"os"
	"time"

	"leaguerats/fetcher/assets"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/stores/championstore"
	"leaguerats/internal/stores/storagestore"
	"leaguerats/pkg/config"
	"leaguerats/pkg/logger"
	"leaguerats/pkg/models/champion"
	"leaguerats/pkg/regions"
	tiervalues "leaguerats/pkg/riotvalues/tier"

	"github.com/rs/zerolog"
)

// Found and expected icons of one asset group.
type coverage struct {
	found    int
	expected int
}

func (c coverage) missing() int {
	return c.expected - c.found
}

type revalidateDeps struct {
	Client   requests.Sender
	Resolver assets.Resolver
	Tiers    *tiervalues.Table
	Logger   zerolog.Logger
}

// Load the champion list and check that every icon the pages show can be resolved.
func revalidate(ctx context.Context, deps revalidateDeps) (map[string]coverage, error) {
	champions := championstore.NewChampionStore(&championstore.ChampionStoreDeps{
		Client: deps.Client,
		Logger: deps.Logger,
	})
	storage := storagestore.NewStorageStore(&storagestore.StorageStoreDeps{
		Resolver:  deps.Resolver,
		Champions: champions,
		Tiers:     deps.Tiers,
		Logger:    deps.Logger,
	})

	if _, err := champions.GetChampions(ctx); err != nil {
		return nil, err
	}
	ids := champions.ChampionIDs()

	report := map[string]coverage{
		"champions": {found: len(storage.FetchAllChampionIcons(ctx, ids)), expected: len(ids)},
		"ranks":     {found: len(storage.FetchAllRankIcons(ctx)), expected: len(deps.Tiers.Tiers())},
		"teams":     {found: len(storage.FetchAllTeamLogos(ctx)), expected: len(regions.AllTeams())},
		"spells":    {found: len(storage.FetchSummonerSpellIcons(ctx)), expected: len(champion.SummonerSpells)},
	}

	for group, c := range report {
		event := deps.Logger.Info()
		if c.missing() > 0 {
			event = deps.Logger.Warn()
		}
		event.Str("group", group).Int("found", c.found).Int("missing", c.missing()).Msg("assets revalidated")
	}
	return report, nil
}

// Check the asset bucket against the current champion list.
// Executed on a regular basis.
func main() {
	log := logger.NewWithWriter(os.Getenv("LOG_LEVEL"), os.Stdout)

	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	tiers, err := tiervalues.NewTable(cfg.League.Tiers)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid tier table")
	}

	var resolver assets.Resolver = assets.StaticResolver{BaseURL: cfg.Bucket.PublicURL}
	if cfg.Bucket.AssetBucket != "" {
		resolver = assets.NewS3ResolverFromClient(assets.NewS3Client(cfg.Bucket), cfg.Bucket.AssetBucket, cfg.Bucket.PublicURL, cfg.Bucket.PresignTTL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	_, err = revalidate(ctx, revalidateDeps{
		Client: requests.NewClient(&requests.ClientDeps{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout,
			Logger:  log,
		}),
		Resolver: resolver,
		Tiers:    tiers,
		Logger:   log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("couldn't fetch the champion list to revalidate the icons")
	}
}
