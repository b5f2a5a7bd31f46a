package aggregator

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc/pool"

	"magnetar/models"
)

// ProbeProviders checks each provider's base URL once at startup, retrying
// briefly to ride out cold-start DNS hiccups. Unreachable providers are
// logged and stay configured: every search still fans out to the full table,
// and a provider that comes back simply starts contributing again.
func ProbeProviders(ctx context.Context, client *Client, providers []models.ProviderSource) {
	p := pool.New().WithContext(ctx)
	for _, src := range providers {
		src := src
		p.Go(func(ctx context.Context) error {
			err := retry.Do(
				func() error {
					probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
					defer cancel()
					_, err := client.Get(probeCtx, strings.TrimRight(src.URL, "/"))
					return err
				},
				retry.Context(ctx),
				retry.Attempts(3),
				retry.Delay(time.Second),
				retry.LastErrorOnly(true),
			)
			if err != nil {
				log.Printf("[probe] provider %s unreachable at %s: %v", src.Key, src.URL, err)
			} else {
				log.Printf("[probe] provider %s reachable", src.Key)
			}
			return nil
		})
	}
	_ = p.Wait()
}
