package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/retreathub/gamehub/bot"
	"github.com/retreathub/gamehub/hub"
	"github.com/retreathub/gamehub/lookup"
	"github.com/retreathub/gamehub/notify"
	"github.com/retreathub/gamehub/server"
	"github.com/retreathub/gamehub/storage"
	"github.com/retreathub/gamehub/store"
	"github.com/retreathub/gamehub/utils"
	"github.com/retreathub/gamehub/utils/dotenv"
	Logger "github.com/retreathub/gamehub/utils/log"
	"github.com/retreathub/gamehub/verifier"
)

func init() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	Logger.Log.Info("hub server initialized")
}

func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, unit time.Duration, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		Logger.Log.Warnf("invalid %s=%q, using default", key, v)
		return fallback
	}
	return time.Duration(n) * unit
}

// newDocumentStore picks the persistence backend: sqlite when HUB_DB_PATH is
// set, flat json files under HUB_DATA_DIR otherwise.
func newDocumentStore() (storage.DocumentStore, error) {
	if path := os.Getenv("HUB_DB_PATH"); path != "" {
		return storage.NewGormDocumentStore(path)
	}
	return storage.NewFileDocumentStore(envOr("HUB_DATA_DIR", "."))
}

func newPlayerCountCache() *utils.PlayerCountCache {
	if os.Getenv("REDIS_HOST") == "" {
		return nil
	}
	cache, err := utils.GetPlayerCountCache(time.Minute)
	if err != nil {
		Logger.Log.Warnf("redis unavailable, serving uncached player counts: %v", err)
		return nil
	}
	return cache
}

func main() {
	docs, err := newDocumentStore()
	if err != nil {
		panic(err)
	}
	entries, err := store.NewEntryStore(docs)
	if err != nil {
		panic(err)
	}
	config, err := store.NewConfigStore(docs)
	if err != nil {
		panic(err)
	}

	roblox := lookup.NewRobloxClient(envDurationOr("LOOKUP_TIMEOUT_SECONDS", time.Second, 10*time.Second))

	eventbus := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            100,
			BlockPublishUntilSubscriberAck: false,
		},
		watermill.NewStdLogger(false, false),
	)
	ctx := context.Background()

	scheduler := verifier.NewScheduler(verifier.SchedulerConfig{
		Name:      "scheduler",
		Interval:  envDurationOr("VERIFY_INTERVAL_SECONDS", time.Second, time.Hour),
		CallDelay: envDurationOr("VERIFY_CALL_DELAY_MS", time.Millisecond, 500*time.Millisecond),
	}, entries, roblox, eventbus)

	// Initialize all engine modules here.
	modules := []verifier.Module{
		// Scheduler periodically sweeps the hub and publishes removal notices
		// onto the EventBus.
		scheduler,
		// Notifier listens for notices on the EventBus and forwards them to the
		// community webhook.
		verifier.NewNotifier(
			verifier.NotifierConfig{Name: "notifier"},
			notify.NewWebhookSender(os.Getenv("HUB_NOTIFY_WEBHOOK")),
			config,
			eventbus,
		),
	}
	engine := verifier.NewEngine(modules, eventbus)
	go engine.Run(ctx)
	defer engine.Shutdown()

	dispatcher := hub.NewDispatcher(entries, config, roblox, scheduler, eventbus)

	// Default with the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())

	router.POST("/bot/cmd", bot.CommandHandler(dispatcher, os.Getenv("HUB_OWNER_ID")))
	router.GET("/", server.IndexHandler())
	router.GET("/api/games", server.GamesHandler(entries, roblox, newPlayerCountCache()))
	router.GET("/api/health", server.HealthHandler(entries, scheduler))
	router.POST("/api/report", server.ReportHandler(scheduler))

	Logger.Log.Info("hub server starts up")
	router.Run(":" + envOr("PORT", "3000"))
}
