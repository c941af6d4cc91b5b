// showcasectl — консольный клиент showcase-сервиса:
// один проход цепочки источников, последние сообщения формы, состав цепочки.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/pribylovaa/go-portfolio-showcase/internal/config"
	"github.com/pribylovaa/go-portfolio-showcase/internal/format"
	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
	"github.com/pribylovaa/go-portfolio-showcase/internal/service"
	"github.com/pribylovaa/go-portfolio-showcase/internal/sources/chain"
	"github.com/pribylovaa/go-portfolio-showcase/internal/storage/postgres"
	logctx "github.com/pribylovaa/go-portfolio-showcase/pkg/log"
	"github.com/pribylovaa/go-portfolio-showcase/pkg/redact"
)

const usage = `usage: showcasectl [--config path] [-v] <command>

commands:
  videos            run the source chain once and print the result
  contacts [-n N]   print the latest contact messages (needs db.url)
  sources           print the enabled source chain
`

func main() {
	var (
		configPath string
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.BoolVar(&verbose, "v", false, "log source attempts to stderr")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}

	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logctx.Into(ctx, log)

	if err := run(ctx, os.Stdout, *cfg, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, cfg config.Config, args []string) error {
	switch cmd := args[0]; cmd {
	case "videos":
		srcs, err := chain.Build(ctx, cfg, nil)
		if err != nil {
			return err
		}

		list := service.New(cfg, srcs).LoadVideos(ctx, nil)
		_, err = fmt.Fprintln(w, renderVideos(list, channelURL(cfg)))
		return err

	case "contacts":
		fs := flag.NewFlagSet("contacts", flag.ContinueOnError)
		limit := fs.Int("n", 10, "how many messages to print")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if cfg.DB.URL == "" {
			return fmt.Errorf("contacts: db.url is not configured")
		}

		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		defer dbCancel()

		store, err := postgres.New(dbCtx, cfg.DB.URL)
		if err != nil {
			return err
		}
		defer store.Close()

		items, err := store.RecentContacts(dbCtx, *limit)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, renderContacts(items))
		return err

	case "sources":
		srcs, err := chain.Build(ctx, cfg, nil)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, renderSources(service.New(cfg, srcs).Sources()))
		return err

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func channelURL(cfg config.Config) string {
	return service.New(cfg, nil).ChannelURL()
}

func renderVideos(list models.VideoList, channel string) string {
	if list.Failed {
		return lipgloss.JoinVertical(lipgloss.Left,
			errorStyle.Render("Unable to load videos"),
			infoStyle.Render("Please check your internet connection and try again."),
			infoStyle.Render("Visit Channel: "+channel),
		)
	}

	rows := []string{
		titleStyle.Render("Latest videos") + "  " + sourceStyle.Render("via "+list.Source),
	}
	for _, v := range list.Videos {
		meta := strings.Join([]string{
			format.PublishedDate(v.PublishedAt),
			v.DurationLabel,
			v.ViewCountLabel + " views",
		}, " · ")

		rows = append(rows, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			v.Title,
			infoStyle.Render(meta),
			infoStyle.Render(format.WatchURL(v.ID)),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderContacts(items []models.Contact) string {
	if len(items) == 0 {
		return infoStyle.Render("no messages yet")
	}

	rows := []string{titleStyle.Render(fmt.Sprintf("Latest %d messages", len(items)))}
	for _, c := range items {
		rows = append(rows, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			sourceStyle.Render(c.Name)+" "+infoStyle.Render("<"+redact.Email(c.Email)+">"),
			infoStyle.Render(c.CreatedAt.Format(time.RFC3339)),
			c.Message,
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderSources(names []string) string {
	if len(names) == 0 {
		return errorStyle.Render("no sources enabled: the widget will always show the error panel")
	}

	return titleStyle.Render("Source chain") + "\n" + strings.Join(names, " -> ")
}
