package converters

import (
	"leaguerats/pkg/models/proplayer"

	"github.com/mitchellh/mapstructure"
)

// MapStreams converts a channel map keyed by player.
func MapStreams(raw any) (map[string]proplayer.Stream, Defaults) {
	return decodeKeyed[proplayer.Stream](raw)
}

// MapAccountNames converts the puuid to pro player index.
func MapAccountNames(raw any) (map[string]proplayer.AccountName, Defaults) {
	return decodeKeyed[proplayer.AccountName](raw)
}

// Decode each value of a keyed document into T, recording unset fields.
func decodeKeyed[T any](raw any) (map[string]T, Defaults) {
	var defaults Defaults
	out := map[string]T{}

	entries, ok := raw.(map[string]any)
	if !ok {
		return out, Defaults{rootPath}
	}

	for key, value := range entries {
		var item T
		if value == nil {
			defaults = append(defaults, key)
			out[key] = item
			continue
		}
		var md mapstructure.Metadata

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Metadata:         &md,
			Result:           &item,
		})
		if err != nil {
			defaults = append(defaults, key)
			continue
		}

		if err := decoder.Decode(value); err != nil {
			defaults = append(defaults, key)
			out[key] = item
			continue
		}

		for _, field := range md.Unset {
			defaults = append(defaults, key+"."+field)
		}
		out[key] = item
	}

	return out, defaults
}
