package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"whitekola/internal/app"
	"whitekola/internal/config"
	"whitekola/internal/database/seeder"
	"whitekola/internal/feeds"
)

func main() {
	once := flag.Bool("once", false, "run a single refresh and exit")
	keyword := flag.String("keyword", "", "narrow external feeds to this search keyword")
	limit := flag.Int("limit", 25, "max postings per external feed")
	headlessBase := flag.String("headless_base", "", "base URL of a JS-rendered job board to crawl with a headless browser")
	headlessPath := flag.String("headless_path", "/jobs", "listing path on the headless job board")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer seedCancel()
	r := seeder.Runner{Seeders: []seeder.Seeder{seeder.JobsSeeder{}}}
	if err := r.Run(seedCtx, c.Docs); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	feedList, err := buildFeeds(*keyword, *limit, *headlessBase, *headlessPath)
	if err != nil {
		log.Fatalf("failed to build feeds: %v", err)
	}

	refresher := feeds.NewRefresher(c.Catalog, feedList, cfg.Feeds.Workers, c.Logger)
	refresher.SetRateLimit(cfg.Feeds.RateLimit)
	refresher.OnRefresh(func(stored int) {
		c.Events.JobsUpdated("feeds", stored)
	})

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go c.Hub.Run(hubCtx)

	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := refresher.Refresh(ctx); err != nil {
			log.Printf("refresh failed: %v", err)
		}
	}

	refresh()
	if *once {
		return
	}

	sched := cron.New()
	if _, err := sched.AddFunc(cfg.Feeds.Schedule, refresh); err != nil {
		log.Fatalf("invalid FEEDS_SCHEDULE %q: %v", cfg.Feeds.Schedule, err)
	}
	sched.Start()
	log.Printf("feed worker running, schedule=%s feeds=%d", cfg.Feeds.Schedule, len(feedList))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	<-sched.Stop().Done()
}

func buildFeeds(keyword string, limit int, headlessBase, headlessPath string) ([]feeds.Feed, error) {
	out := []feeds.Feed{feeds.NewSeedFeed()}

	li, err := feeds.NewLinkedInFeed("", strings.TrimSpace(keyword), limit)
	if err != nil {
		return nil, err
	}
	out = append(out, li)

	if base := strings.TrimSpace(headlessBase); base != "" {
		hf, err := feeds.NewHeadlessFeed("headless", base, headlessPath, headlessPath, limit)
		if err != nil {
			return nil, err
		}
		out = append(out, hf)
	}
	return out, nil
}
