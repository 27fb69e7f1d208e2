package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/univac-1/ai-info-rss-feed/config"
	"github.com/univac-1/ai-info-rss-feed/crawler"
	"github.com/univac-1/ai-info-rss-feed/enrich"
	"github.com/univac-1/ai-info-rss-feed/hatena"
	"github.com/univac-1/ai-info-rss-feed/internal"
	"github.com/univac-1/ai-info-rss-feed/logger"
	"github.com/univac-1/ai-info-rss-feed/og"
	"github.com/univac-1/ai-info-rss-feed/render"
	"github.com/univac-1/ai-info-rss-feed/server"
	"github.com/univac-1/ai-info-rss-feed/store"
)

type GenerateCmd struct {
	Config string `help:"Feed list, .toml or .opml." default:"src/resources/feed.toml" env:"FEED_CONFIG"`
	OutDir string `help:"Site output directory." default:"src/site" env:"OUT_DIR"`
}

type ServeCmd struct {
	Dir  string `help:"Site directory to serve." default:"src/site" env:"OUT_DIR"`
	Addr string `help:"Listen address." default:":8080" env:"LISTEN_ADDR"`
}

var cli struct {
	Generate GenerateCmd `cmd:"" default:"withargs" help:"Fetch, aggregate and write the feeds."`
	Serve    ServeCmd    `cmd:"" help:"Serve the generated site directory."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("ai-info-rss-feed"),
		kong.Description("Aggregated AI news feed generator."),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

func (cmd *GenerateCmd) Run() error {
	log := logger.New("feedgen").With(slog.String("run_id", uuid.NewString()))
	log.Info("feed generation started", slog.String("config", cmd.Config))

	cfg, err := config.Load(cmd.Config)
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		return err
	}

	ctx := context.Background()
	now := time.Now().UTC()

	c := crawler.New(log, cfg.FeedConcurrency)
	feeds := c.FetchFeeds(ctx, cfg.Sources)

	cutoff := now.Add(-internal.AggregateWindow)
	items := c.Aggregate(feeds, cutoff)

	orch := enrich.NewOrchestrator(log, og.NewFetcher(log, cfg.OgConcurrency), hatena.NewClient(log))
	res, err := orch.Run(ctx, items, feeds)
	if err != nil {
		log.Error("enrichment failed", slog.Any("err", err))
		return err
	}
	ogMap := res.MergedOg()

	agg := render.BuildAggregatedFeed(items, ogMap, res.ItemCounts, now)
	jsonBody, err := render.JSONFeed(agg)
	if err != nil {
		log.Error("render json feed", slog.Any("err", err))
		return err
	}
	set := internal.DistributionSet{
		Atom: render.Atom(agg, now),
		RSS:  render.RSS(agg, now),
		JSON: jsonBody,
	}

	st := store.NewFsStore(log,
		filepath.Join(cmd.OutDir, "feeds"),
		filepath.Join(cmd.OutDir, "blog-feeds"),
	)
	if err := st.WriteDistribution(set); err != nil {
		log.Error("write distribution set", slog.Any("err", err))
		return err
	}
	if err := st.WriteBlogFeeds(feeds, ogMap, res.ItemCounts); err != nil {
		log.Error("write blog feeds", slog.Any("err", err))
		return err
	}

	log.Info("feed generation complete",
		slog.Int("feeds", len(feeds)),
		slog.Int("entries", len(items)),
	)
	return nil
}

func (cmd *ServeCmd) Run() error {
	log := logger.New("feedserve")
	return server.Run(log, cmd.Dir, cmd.Addr)
}
