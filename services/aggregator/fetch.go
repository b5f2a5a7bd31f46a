package aggregator

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/rs/dnscache"
)

const dnsRefreshInterval = 5 * time.Minute

// Client performs provider HTTP fetches over a transport that resolves
// hostnames through a caching resolver and pins each outbound connection to
// an address we resolved ourselves. Transient resolver failures inside
// containerized deployments then hit the cache instead of killing a whole
// search; if resolution fails outright the dial falls back to the default
// path untouched.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient builds a Client with the given per-request timeout ceiling.
// Individual provider calls are expected to carry their own context
// deadline; the client timeout is a last-resort bound.
func NewClient(timeout time.Duration, userAgent string) *Client {
	resolver := &dnscache.Resolver{}
	dialer := &net.Dialer{Timeout: timeout}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return dialer.DialContext(ctx, network, addr)
			}
			ips, err := resolver.LookupHost(ctx, host)
			if err != nil || len(ips) == 0 {
				return dialer.DialContext(ctx, network, addr)
			}
			var conn net.Conn
			for _, ip := range ips {
				conn, err = dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
				if err == nil {
					return conn, nil
				}
			}
			return nil, err
		},
		MaxIdleConnsPerHost: 4,
	}

	go func() {
		ticker := time.NewTicker(dnsRefreshInterval)
		defer ticker.Stop()
		for range ticker.C {
			resolver.Refresh(true)
		}
	}()

	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Get fetches the URL and returns the response body. A non-2xx status is
// not an error: the provider contributed nothing and the aggregation moves
// on, so both return values are nil. Context expiry surfaces as an error so
// callers can tell a timed-out provider from an empty one.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		log.Printf("[fetch] %s returned %d, treating as empty", url, resp.StatusCode)
		return nil, nil
	}

	return io.ReadAll(resp.Body)
}
