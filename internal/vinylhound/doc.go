// Package vinylhound provides an HTTP client for the Vinylhound catalog API.
//
// # Overview
//
// Client wraps one transport primitive, Request, and builds every endpoint
// on top of it. Responses are decoded into catalog.Value and passed through
// the catalog normalizers, so callers only ever see canonical records.
//
//	client, err := vinylhound.NewClient(vinylhound.Options{
//		BaseURL: cfg.APIBaseURL,
//		Timeout: cfg.RequestTimeout,
//		Logger:  logger,
//	})
//	if err != nil {
//		return err
//	}
//	album, err := client.FetchAlbum(ctx, "42", token)
//
// # URL Building
//
// The configured base URL is split into an origin and a base path. Request
// paths are appended to the base path with duplicate slashes collapsed. When
// the base path already ends in a version segment that the request path
// starts with ("/api/v1" and "/v1/albums"), only one copy is kept.
//
// # Headers
//
// Every request carries Accept, User-Agent and a fresh X-Request-ID. A
// bearer Authorization header is only sent for a non-blank token, and
// Content-Type only when there is a body.
//
// # Errors
//
//   - *ValidationError (errors.Is ErrValidation): rejected before any I/O,
//     for example a rating outside 1..5 or a missing token.
//   - *HTTPError: any non-2xx status. Message prefers the JSON "error" field,
//     then "message", then the raw body, then the status line.
//   - *TransportError (errors.Is ErrTransport): DNS, connection and timeout
//     failures. Context cancellation stays in the chain.
//
// # Fallback Paths
//
// RequestWithFallback tries candidate paths in order and only moves on after
// a 404. Signup, login and profile content use it to reach legacy routes.
//
// # Soft Failures
//
// Track lists fetched on the side (FetchAlbum when the album payload has no
// tracks, ListAlbums with IncludeTracks) are logged at warn level on failure
// and never fail the main call.
package vinylhound
