package main

import (
	"context"
	"log"
	"os"

	"aynamodaapi/dbhelper"
	"aynamodaapi/services"
	"aynamodaapi/tasks"

	firebase "firebase.google.com/go/v4"
	"github.com/hibiken/asynq"
)

func runScheduler() {

	scheduler := asynq.NewScheduler(asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")}, &asynq.SchedulerOpts{
		LogLevel: asynq.InfoLevel,
	})

	scheduled := []struct {
		cron string
		task *asynq.Task
		desc string
	}{
		{
			cron: "30 7 * * *", // 7:30 AM daily
			task: tasks.NewDailyOutfitAlertTask(),
			desc: "Daily outfit notifications",
		},
	}

	for _, t := range scheduled {
		entryID, err := scheduler.Register(t.cron, t.task)
		if err != nil {
			log.Fatalf("Failed to register task '%s': %v", t.desc, err)
		}
		log.Printf("Registered task '%s' with ID: %s, cron: %s", t.desc, entryID, t.cron)
	}

	log.Println("Starting scheduler...")
	if err := scheduler.Run(); err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}

func main() {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")},
		asynq.Config{Concurrency: 10, Queues: map[string]int{
			"profile": 5,
			"default": 5,
		}},
	)
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase app: %v\n", err)
		return
	}

	db := dbhelper.SetupDB()
	feedbackStore := &services.GormFeedbackStore{DB: db}
	feedbackCache, err := services.NewFeedbackCacheService(feedbackStore)
	if err != nil {
		log.Fatal("Failed to initialize feedback cache service")
	}
	recommender := services.NewRecommender(
		&services.GormWardrobeStore{DB: db},
		feedbackStore,
		&services.GormProfileStore{DB: db},
		&services.HTTPWeatherService{},
		services.NoCalendarService{},
		feedbackCache,
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc("profile:analyze", func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleStyleProfileAnalysisTask(ctx, t, db, feedbackCache)
	})
	mux.HandleFunc("recommend:daily_alert", func(ctx context.Context, t *asynq.Task) error {
		return tasks.ScheduledDailyOutfitTask(ctx, t, db, app, recommender)
	})

	go runScheduler()
	if err := srv.Run(mux); err != nil {
		log.Fatal(err)
	}
}
