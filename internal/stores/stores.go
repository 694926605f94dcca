// Package stores holds the helpers shared by the state containers.
package stores

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"leaguerats/fetcher/requests"
	"leaguerats/internal/converters"
	"leaguerats/pkg/messages"

	"github.com/rs/zerolog"
)

// Fetch sends the request and maps the body of a successful response.
// Failed responses are classified into the shared error sentinels.
func Fetch[T any](ctx context.Context, client requests.Sender, logger zerolog.Logger, request requests.Request, mapper func(raw any) (T, converters.Defaults)) (T, error) {
	var zero T

	resp := client.SendRequest(ctx, request)
	if err := requests.Classify(resp); err != nil {
		return zero, fmt.Errorf("%s %s: %w", request.Method, request.URL, err)
	}

	value, defaults := mapper(resp.Raw())
	LogDefaults(logger, request.URL, defaults)
	return value, nil
}

// LogDefaults reports payloads that were normalized with zero values.
func LogDefaults(logger zerolog.Logger, source string, defaults converters.Defaults) {
	if defaults.Empty() {
		return
	}
	logger.Debug().Strs("fields", defaults).Msgf(messages.FieldsDefaulted, source)
}

// URL joins escaped path segments and appends the query.
func URL(query url.Values, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}

	path := "/" + strings.Join(escaped, "/")
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return path
}

// Clone copies a map so a published value never aliases store state.
func Clone[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
