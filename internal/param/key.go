package param

import (
	"context"

	"github.com/dmorgan81/wastebot/internal/log"
)

// ResolveKey returns direct when set, otherwise the value of the parameter at
// path. A failed lookup is logged and yields an empty key so requests report
// the missing credential instead of the function failing to start.
func ResolveKey(ctx context.Context, f Fetcher, direct, path string) string {
	if direct != "" || path == "" {
		return direct
	}
	key, err := f.Fetch(ctx, path)
	if err != nil {
		log.FromContextOrDiscard(ctx).Error("could not fetch api key", "path", path, "error", err)
		return ""
	}
	return key
}
