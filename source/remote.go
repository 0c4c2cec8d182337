package source

import (
	"context"

	"github.com/cwbudde/algo-diffspec/fault"
	"github.com/cwbudde/algo-diffspec/fetch"
)

// Remote reads ranges of an HTTP resource. It holds no connection state
// between reads.
type Remote struct {
	url    string
	client *fetch.Client
	size   int64
}

// OpenRemote checks that url supports range requests and resolves its size.
func OpenRemote(ctx context.Context, client *fetch.Client, url string) (*Remote, error) {
	if client == nil {
		client = fetch.New()
	}

	if err := client.Ping(ctx, url); err != nil {
		return nil, err
	}

	size, err := client.Size(ctx, url)
	if err != nil {
		return nil, err
	}

	return &Remote{url: url, client: client, size: size}, nil
}

// Locator returns the URL.
func (r *Remote) Locator() string { return r.url }

// Size returns the Content-Length resolved at open.
func (r *Remote) Size() int64 { return r.size }

// ReadRange fetches length bytes at offset, retrying per the client policy.
func (r *Remote) ReadRange(ctx context.Context, offset int64, length int) ([]byte, error) {
	if err := checkRange(r.size, offset, length); err != nil {
		return nil, fault.Fetch("read "+r.url, err)
	}
	if length == 0 {
		return []byte{}, nil
	}
	return r.client.Fetch(ctx, r.url, offset, offset+int64(length))
}

// Close is a no-op; remote sources are stateless.
func (r *Remote) Close() error { return nil }
