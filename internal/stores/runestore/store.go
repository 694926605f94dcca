package runestore

import (
	"context"
	"fmt"
	"slices"

	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/converters"
	"leaguerats/internal/keyedcache"
	"leaguerats/internal/observer"
	"leaguerats/internal/stores"
	"leaguerats/pkg/errs"
	"leaguerats/pkg/models/match"
	"leaguerats/pkg/models/runes"

	"github.com/rs/zerolog"
)

const infoKey = "runes"

// IconResolver turns rune icon paths into URLs.
type IconResolver interface {
	FetchRuneIcons(ctx context.Context, pathByID map[int]string) map[int]string
}

type RuneStoreDeps struct {
	Client requests.Sender
	// When set, rune paths are read from help/runes.
	Documents docstore.Store
	Icons     IconResolver
	Publisher observer.Publisher
	Logger    zerolog.Logger
}

// RuneStore serves the rune paths and resolves rune icons of a selection.
type RuneStore struct {
	client requests.Sender
	docs   docstore.Store
	icons  IconResolver
	logger zerolog.Logger

	info *keyedcache.Cache[string, []runes.RuneTree]

	RuneInfo *observer.Value[[]runes.RuneTree]
}

func NewRuneStore(deps *RuneStoreDeps) *RuneStore {
	return &RuneStore{
		client:   deps.Client,
		docs:     deps.Documents,
		icons:    deps.Icons,
		logger:   deps.Logger,
		info:     keyedcache.New[string, []runes.RuneTree](),
		RuneInfo: observer.NewValue("rune.info", []runes.RuneTree{}, observer.WithPublisher(deps.Publisher)),
	}
}

// GetRuneInfo loads the rune paths once per session.
func (s *RuneStore) GetRuneInfo(ctx context.Context) ([]runes.RuneTree, error) {
	trees, err := s.info.GetOrFetch(ctx, infoKey, func(ctx context.Context) ([]runes.RuneTree, error) {
		if s.docs != nil {
			doc, err := s.docs.Get(ctx, "help/runes")
			if err != nil {
				return nil, err
			}
			raw, _ := doc.Field("runes")
			trees, defaults := converters.MapList(raw, converters.MapRuneTree)
			stores.LogDefaults(s.logger, doc.Path, defaults)
			return trees, nil
		}

		request := requests.Get(stores.URL(nil, "v2", "runes"))
		return stores.Fetch(ctx, s.client, s.logger, request, func(raw any) ([]runes.RuneTree, converters.Defaults) {
			return converters.MapList(raw, converters.MapRuneTree)
		})
	})
	if err != nil {
		return nil, err
	}

	s.RuneInfo.Set(trees)
	return trees, nil
}

// RuneIconPaths maps both trees and every selected rune to its icon path.
// Trees or runes missing from the rune info are left out.
func (s *RuneStore) RuneIconPaths(ctx context.Context, perks match.Perks) (map[int]string, error) {
	trees, err := s.GetRuneInfo(ctx)
	if err != nil {
		return nil, err
	}

	paths := map[int]string{}
	for _, style := range []int{perks.PerkStyle, perks.PerkSubStyle} {
		idx := slices.IndexFunc(trees, func(tree runes.RuneTree) bool { return tree.ID == style })
		if idx < 0 {
			continue
		}

		tree := trees[idx]
		paths[tree.ID] = tree.Icon
		for _, r := range tree.Runes() {
			if slices.Contains(perks.PerkIDs, r.ID) {
				paths[r.ID] = r.Icon
			}
		}
	}
	return paths, nil
}

// Keystone returns the first selected rune of the primary tree.
func (s *RuneStore) Keystone(ctx context.Context, perks match.Perks) (runes.RuneData, bool, error) {
	trees, err := s.GetRuneInfo(ctx)
	if err != nil {
		return runes.RuneData{}, false, err
	}

	for _, tree := range trees {
		if tree.ID != perks.PerkStyle {
			continue
		}
		for _, r := range tree.Runes() {
			if slices.Contains(perks.PerkIDs, r.ID) {
				return r, true, nil
			}
		}
	}
	return runes.RuneData{}, false, nil
}

// RuneIcons resolves the icon URLs of a rune selection.
func (s *RuneStore) RuneIcons(ctx context.Context, perks match.Perks) (map[int]string, error) {
	if s.icons == nil {
		return nil, fmt.Errorf("%w: no rune icon resolver configured", errs.ErrInvalidInput)
	}

	paths, err := s.RuneIconPaths(ctx, perks)
	if err != nil {
		return nil, err
	}
	return s.icons.FetchRuneIcons(ctx, paths), nil
}

// ResetState drops the loaded rune info.
func (s *RuneStore) ResetState() {
	s.info.Reset()
	s.RuneInfo.Set([]runes.RuneTree{})
}
