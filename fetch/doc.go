// Package fetch retrieves byte ranges of remote HTTP resources.
//
// A [Client] answers three questions about a URL: whether the server
// supports range requests ([Client.Ping]), how large the resource is
// ([Client.Size]), and what bytes lie in a half-open range
// ([Client.Fetch]). Range fetches are retried immediately, without backoff,
// up to a fixed number of extra attempts.
//
//	c := fetch.New(fetch.WithRetries(3), fetch.WithTimeout(2*time.Second))
//	if err := c.Ping(ctx, url); err != nil {
//		return err
//	}
//	size, err := c.Size(ctx, url)
//	data, err := c.Fetch(ctx, url, 0, 4096)
package fetch
