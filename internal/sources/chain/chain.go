// chain собирает упорядоченную цепочку источников из конфигурации.
package chain

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pribylovaa/go-portfolio-showcase/internal/config"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources/dataapi"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources/rss"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources/scrape"
	"github.com/pribylovaa/go-portfolio-showcase/pkg/log"
)

// Build возвращает источники в порядке приоритета: RSS, Data API, скрейпинг.
// Выключенные источники и API без ключа в цепочку не попадают.
// client == nil означает клиент с таймаутом cfg.Timeouts.Fetch.
func Build(ctx context.Context, cfg config.Config, client *http.Client) ([]sources.Source, error) {
	const op = "chain.Build"

	if client == nil {
		client = &http.Client{Timeout: cfg.Timeouts.Fetch}
	}

	relay := sources.Relay{Prefix: cfg.Relay.Prefix}
	var output []sources.Source

	if cfg.Fetch.EnableRSS {
		output = append(output, rss.New(client, rss.Options{
			Handle:     cfg.Channel.Handle,
			ChannelID:  cfg.Channel.ID,
			MaxResults: cfg.Fetch.MaxResults,
			Relay:      relay,
		}))
	}

	switch {
	case cfg.Fetch.APIEnabled(cfg.Channel):
		src, err := dataapi.New(ctx, client, dataapi.Options{
			APIKey:     cfg.Channel.APIKey,
			Handle:     cfg.Channel.Handle,
			ChannelID:  cfg.Channel.ID,
			MaxResults: cfg.Fetch.MaxResults,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		output = append(output, src)
	case cfg.Fetch.EnableAPI:
		log.From(ctx).Warn("api_source_skipped",
			slog.String("op", op),
			slog.String("reason", "no api key"),
		)
	}

	if cfg.Fetch.EnableScraping {
		output = append(output, scrape.New(scrape.Options{
			Handle:     cfg.Channel.Handle,
			MaxResults: cfg.Fetch.MaxResults,
			Relay:      relay,
			Timeout:    cfg.Timeouts.Fetch,
			Transport:  client.Transport,
		}))
	}

	return output, nil
}
