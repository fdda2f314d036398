package main

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ledgerline/backend/internal/auth"
	"github.com/ledgerline/backend/internal/config"
	"github.com/ledgerline/backend/internal/handler"
	"github.com/ledgerline/backend/internal/service"
	"github.com/ledgerline/backend/internal/store"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	if cfg.IsLocal() {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx := context.Background()

	var storeImpl store.Store
	var firebaseAuth *auth.FirebaseAuth

	if cfg.UseMemoryStore {
		log.Info("using in-memory store for local development")
		storeImpl = store.NewMemoryStore()
	} else {
		if cfg.ProjectID == "" {
			log.Fatal("GOOGLE_CLOUD_PROJECT is required when not using the memory store")
		}

		firestoreClient, err := firestore.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			log.WithError(err).Fatal("creating Firestore client")
		}
		defer firestoreClient.Close()
		storeImpl = store.NewFirestoreStore(firestoreClient)

		if !cfg.SkipAuth {
			firebaseAuth, err = auth.NewFirebaseAuth(ctx)
			if err != nil {
				log.WithError(err).Fatal("initializing Firebase auth")
			}
		}
	}

	svc := service.NewAnalyticsService(storeImpl, log)
	h := handler.New(svc, log, cfg.SchedulerSecret)

	router := h.Routes()

	var protected http.Handler = router
	if firebaseAuth != nil {
		protected = auth.Middleware(firebaseAuth, log)(router)
	} else {
		log.Warn("authentication disabled, injecting local dev user")
		protected = auth.LocalDevMiddleware()(router)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
			"X-Scheduler-Secret",
			"X-Debug-Impersonate-User",
		},
		AllowCredentials: true,
	})

	// Background jobs run in-process; Cloud Scheduler can also hit the job
	// endpoints directly with the shared secret.
	jobs := cron.New()
	if _, err := jobs.AddFunc(cfg.RecurringSchedule, func() {
		if _, err := svc.ProcessRecurringTransactions(context.Background()); err != nil {
			log.WithError(err).Error("recurring sweep failed")
		}
	}); err != nil {
		log.WithError(err).Fatal("scheduling recurring sweep")
	}
	if _, err := jobs.AddFunc(cfg.DigestSchedule, func() {
		if _, err := svc.GenerateWeeklyDigest(context.Background(), ""); err != nil {
			log.WithError(err).Error("weekly digest run failed")
		}
	}); err != nil {
		log.WithError(err).Fatal("scheduling weekly digest")
	}
	jobs.Start()
	defer jobs.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(c.Handler(protected), &http2.Server{}),
	}

	log.WithField("port", cfg.Port).Info("starting server")
	if err := srv.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
