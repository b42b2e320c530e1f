package vinylhound

import (
	"context"

	"github.com/five82/crate/internal/catalog"
)

// RequestWithFallback tries each candidate path in order. A 404 moves on to
// the next candidate; any other error, or a 404 from the last candidate, is
// returned as is. The first successful body wins.
func (c *Client) RequestWithFallback(ctx context.Context, method string, paths []string, opts RequestOptions) (catalog.Value, error) {
	if len(paths) == 0 {
		return catalog.Null(), invalid("paths", "at least one candidate path is required")
	}
	for i, path := range paths {
		value, err := c.Request(ctx, method, path, opts)
		if err == nil {
			return value, nil
		}
		if IsNotFound(err) && i < len(paths)-1 {
			c.log.WithField("path", path).Debug("endpoint not found, trying fallback")
			continue
		}
		return catalog.Null(), err
	}
	return catalog.Null(), nil
}
