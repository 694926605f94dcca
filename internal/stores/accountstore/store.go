package accountstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/converters"
	"leaguerats/internal/keyedcache"
	"leaguerats/internal/observer"
	"leaguerats/internal/stores"
	"leaguerats/pkg/errs"
	"leaguerats/pkg/messages"
	"leaguerats/pkg/models/account"
	"leaguerats/pkg/regions"

	"github.com/rs/zerolog"
)

const (
	accountsCollection = "accounts"
	usersCollection    = "users"
)

var errNoDocuments = fmt.Errorf("%w: no document store configured", errs.ErrInvalidInput)

// PuuidLookup identifies an account by its puuid.
type PuuidLookup struct {
	Puuid string
}

// RiotIDLookup identifies an account by name and tag.
type RiotIDLookup struct {
	GameName string
	TagLine  string
}

// AccountLookup holds exactly one of the lookups and the region to search.
type AccountLookup struct {
	ByPuuid  *PuuidLookup
	ByRiotID *RiotIDLookup
	Region   regions.Select
}

type riotIDKey struct {
	gameName string
	tagLine  string
	region   regions.Select
}

type puuidKey struct {
	puuid  string
	region regions.Select
}

type AccountStoreDeps struct {
	Client    requests.Sender
	Documents docstore.Store
	Publisher observer.Publisher
	Logger    zerolog.Logger
}

// AccountStore resolves riot accounts and caches them for the session.
type AccountStore struct {
	client    requests.Sender
	documents docstore.Store
	logger    zerolog.Logger

	byRiotID *keyedcache.Cache[riotIDKey, account.Account]
	byPuuid  *keyedcache.Cache[puuidKey, account.Account]

	Current *observer.Value[*account.Account]
}

func NewAccountStore(deps *AccountStoreDeps) *AccountStore {
	return &AccountStore{
		client:    deps.Client,
		documents: deps.Documents,
		logger:    deps.Logger,
		byRiotID:  keyedcache.New[riotIDKey, account.Account](),
		byPuuid:   keyedcache.New[puuidKey, account.Account](),
		Current:   observer.NewValue[*account.Account]("account.current", nil, observer.WithPublisher(deps.Publisher)),
	}
}

// GetAccount returns the account matching the lookup, fetching it on the first request.
func (s *AccountStore) GetAccount(ctx context.Context, lookup AccountLookup) (account.Account, error) {
	region, err := validateRegion(lookup.Region)
	if err != nil {
		return account.Account{}, err
	}

	var acc account.Account
	switch {
	case lookup.ByPuuid != nil && lookup.ByRiotID != nil:
		return account.Account{}, fmt.Errorf("%w: lookup by puuid and riot id at once", errs.ErrInvalidInput)
	case lookup.ByPuuid != nil:
		acc, err = s.getByPuuid(ctx, *lookup.ByPuuid, region)
	case lookup.ByRiotID != nil:
		acc, err = s.getByRiotID(ctx, *lookup.ByRiotID, region)
	default:
		return account.Account{}, fmt.Errorf("%w: empty account lookup", errs.ErrInvalidInput)
	}
	if err != nil {
		return account.Account{}, err
	}

	s.Current.Set(&acc)
	return acc, nil
}

func (s *AccountStore) getByRiotID(ctx context.Context, lookup RiotIDLookup, region regions.Select) (account.Account, error) {
	if strings.TrimSpace(lookup.GameName) == "" || strings.TrimSpace(lookup.TagLine) == "" {
		return account.Account{}, fmt.Errorf("%w: game name and tag line are required", errs.ErrInvalidInput)
	}

	key := newRiotIDKey(lookup.GameName, lookup.TagLine, region)
	return s.byRiotID.GetOrFetch(ctx, key, func(ctx context.Context) (account.Account, error) {
		query := url.Values{
			"region":   {string(region)},
			"username": {lookup.GameName},
			"tag":      {lookup.TagLine},
		}

		acc, err := stores.Fetch(ctx, s.client, s.logger, requests.Get(stores.URL(query, "v2", "account", "")), converters.MapAccount)
		if err != nil {
			return account.Account{}, err
		}

		acc.Region = string(region)
		if acc.Puuid != "" {
			s.byPuuid.Set(puuidKey{puuid: acc.Puuid, region: region}, acc)
		}
		s.persist(ctx, acc)
		return acc, nil
	})
}

func (s *AccountStore) getByPuuid(ctx context.Context, lookup PuuidLookup, region regions.Select) (account.Account, error) {
	if strings.TrimSpace(lookup.Puuid) == "" {
		return account.Account{}, fmt.Errorf("%w: puuid is required", errs.ErrInvalidInput)
	}

	key := puuidKey{puuid: lookup.Puuid, region: region}
	return s.byPuuid.GetOrFetch(ctx, key, func(ctx context.Context) (account.Account, error) {
		query := url.Values{
			"puuid":  {lookup.Puuid},
			"region": {string(region)},
		}

		acc, err := stores.Fetch(ctx, s.client, s.logger, requests.Get(stores.URL(query, "v2", "account", "")), converters.MapAccount)
		if err != nil {
			return account.Account{}, err
		}

		acc.Region = string(region)
		if acc.GameName != "" {
			s.byRiotID.Set(newRiotIDKey(acc.GameName, acc.TagLine, region), acc)
		}
		s.persist(ctx, acc)
		return acc, nil
	})
}

// GetAccountsInAllRegions finds the riot id on every server. Regions without the account map to nil.
func (s *AccountStore) GetAccountsInAllRegions(ctx context.Context, gameName, tagLine string) (map[regions.Select]*account.Account, error) {
	if strings.TrimSpace(gameName) == "" || strings.TrimSpace(tagLine) == "" {
		return nil, fmt.Errorf("%w: game name and tag line are required", errs.ErrInvalidInput)
	}

	request := requests.Get(stores.URL(nil, "v2", "account", "all-regions", gameName, tagLine))
	raw, err := stores.Fetch(ctx, s.client, s.logger, request, func(raw any) (map[string]any, converters.Defaults) {
		entries, ok := raw.(map[string]any)
		if !ok {
			return map[string]any{}, converters.Defaults{"$"}
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}

	accounts := make(map[regions.Select]*account.Account, len(raw))
	for code, value := range raw {
		region, err := validateRegion(regions.Select(code))
		if err != nil {
			s.logger.Debug().Msgf(messages.InvalidRegionMsg, code)
			continue
		}

		if value == nil {
			accounts[region] = nil
			continue
		}

		acc, defaults := converters.MapAccount(value)
		stores.LogDefaults(s.logger, request.URL, defaults)
		acc.Region = string(region)

		if acc.Puuid != "" {
			s.byPuuid.Set(puuidKey{puuid: acc.Puuid, region: region}, acc)
		}
		s.byRiotID.Set(newRiotIDKey(gameName, tagLine, region), acc)

		accounts[region] = &acc
	}

	return accounts, nil
}

// persist saves a freshly fetched account. Failures only get logged.
func (s *AccountStore) persist(ctx context.Context, acc account.Account) {
	if s.documents == nil || acc.GameName == "" || acc.TagLine == "" {
		return
	}
	if err := s.SaveAccount(ctx, acc); err != nil {
		s.logger.Warn().Err(err).Str("puuid", acc.Puuid).Msg("could not save account")
	}
}

// SaveAccount stores the account document, keyed by puuid when it has one.
func (s *AccountStore) SaveAccount(ctx context.Context, acc account.Account) error {
	if s.documents == nil {
		return errNoDocuments
	}
	if acc.GameName == "" || acc.TagLine == "" {
		return fmt.Errorf("%w: account without riot id", errs.ErrInvalidInput)
	}

	if acc.Puuid == "" {
		_, err := s.documents.Add(ctx, accountsCollection, acc)
		return err
	}
	return s.documents.Set(ctx, docstore.Join(accountsCollection, acc.Puuid), acc)
}

// FindStoredAccount returns the first saved account with the riot id.
func (s *AccountStore) FindStoredAccount(ctx context.Context, gameName, tagLine string) (account.Account, error) {
	if s.documents == nil {
		return account.Account{}, errNoDocuments
	}
	docs, err := s.documents.Query(ctx, docstore.Query{
		Collection: accountsCollection,
		Where: []docstore.Filter{
			{Field: "gameName", Value: gameName},
			{Field: "tagLine", Value: tagLine},
		},
		Limit: 1,
	})
	if err != nil {
		return account.Account{}, err
	}
	if len(docs) == 0 {
		return account.Account{}, fmt.Errorf("account %s#%s: %w", gameName, tagLine, errs.ErrNotFound)
	}

	acc, defaults := converters.MapAccount(docs[0].Data)
	stores.LogDefaults(s.logger, docs[0].Path, defaults)
	return acc, nil
}

// UserExists reports whether a site user is registered with the name and tag.
func (s *AccountStore) UserExists(ctx context.Context, username, tag string) (bool, error) {
	if s.documents == nil {
		return false, errNoDocuments
	}
	docs, err := s.documents.Query(ctx, docstore.Query{
		Collection: usersCollection,
		Where: []docstore.Filter{
			{Field: "username", Value: username},
			{Field: "tag", Value: tag},
		},
		Limit: 1,
	})
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

// ResetState drops every cached account.
func (s *AccountStore) ResetState() {
	s.byRiotID.Reset()
	s.byPuuid.Reset()
	s.Current.Set(nil)
}

func validateRegion(region regions.Select) (regions.Select, error) {
	region = regions.Select(strings.ToUpper(strings.TrimSpace(string(region))))
	if _, err := regions.ToPlatform(region); err != nil {
		return "", err
	}
	return region, nil
}

// Riot ids are case insensitive.
func newRiotIDKey(gameName, tagLine string, region regions.Select) riotIDKey {
	return riotIDKey{
		gameName: strings.ToLower(strings.TrimSpace(gameName)),
		tagLine:  strings.ToLower(strings.TrimSpace(tagLine)),
		region:   region,
	}
}
