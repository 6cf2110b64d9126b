// Package httputil fetches remote assets for the editor.
//
// # Overview
//
// [Fetcher] downloads an image (or any small asset) over HTTP so it can be
// embedded into a page as a data URI. It layers three concerns:
//
//   - URL validation: only absolute http and https URLs are fetched
//   - Retry: network errors, 5xx and 429 responses are retried with
//     exponential backoff via [cache.Retry]
//   - Caching: successful responses are stored in any [cache.Cache]
//     backend under a hashed key
//
// # Usage
//
//	f := httputil.NewFetcher(httputil.Options{Cache: c})
//	res, err := f.Fetch(ctx, "https://example.com/photo.png")
//	if err != nil {
//	    return err
//	}
//	done := session.LoadImage(ctx, id, "src", bytes.NewReader(res.Body), res.ContentType)
//
// Bodies larger than [Options.MaxBytes] are rejected with a validation
// error rather than truncated.
package httputil
