package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nada/admin/internal/config"
	"github.com/nada/admin/internal/handlers"
	appMiddleware "github.com/nada/admin/internal/middleware"
	"github.com/nada/admin/internal/services"
	"github.com/nada/admin/internal/storage"
)

func main() {
	cfg := config.Load()
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongo, err := storage.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTransactions)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}

	// Firebase Auth (server-side verification of ID tokens)
	var (
		verifier handlers.TokenVerifier
		claims   services.ClaimsSetter
	)
	authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
		ProjectID:       cfg.FirebaseProjectID,
		CredentialsJSON: cfg.FirebaseCredentialsJSON,
	})
	if err != nil {
		log.Printf("Warning: failed to initialize Firebase Auth client: %v", err)
	} else {
		verifier = authClient
		claims = services.NewFirebaseClaims(authClient)
	}

	var blobs services.BlobStore
	if cfg.StorageBucket != "" {
		gcsStore, err := services.NewGCSBlobStore(ctx, cfg.StorageBucket, cfg.FirebaseCredentialsJSON)
		if err != nil {
			log.Printf("Warning: storage client unavailable, blob cleanup disabled: %v", err)
		} else {
			defer gcsStore.Close()
			blobs = gcsStore
		}
	}

	var revoked appMiddleware.RevocationList
	if cfg.RedisURL != "" {
		rl, err := appMiddleware.NewRedisRevocationList(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: redis unavailable, sign-out will not revoke sessions: %v", err)
		} else {
			defer rl.Close()
			revoked = rl
		}
	}

	// Stores
	userStore := services.NewMongoUserStore(ctx, mongo)
	txStore := services.NewMongoTransactionStore(ctx, mongo)
	reportStore := services.NewMongoReportStore(ctx, mongo)
	contentStore := services.NewMongoContentStore(mongo)
	songStore := services.NewMongoSongStore(ctx, mongo)
	appStore := services.NewMongoApplicationStore(ctx, mongo)
	contactStore := services.NewMongoContactStore(ctx, mongo)
	notifier := services.NewAsyncNotifier(services.NewMongoNotificationStore(ctx, mongo))

	// Services
	userService := services.NewUserAdminService(userStore, claims)
	npService := services.NewNPService(userStore, txStore, mongo)
	moderationService := services.NewModerationService(reportStore, contentStore, songStore, userStore, mongo, notifier)
	songService := services.NewSongService(songStore, blobs, notifier)
	appService := services.NewApplicationService(appStore, userStore, blobs, mongo, notifier)
	contactService := services.NewContactService(contactStore)

	issuer := appMiddleware.NewSessionIssuer(cfg.SessionSecret, cfg.SessionTTL)
	api := &handlers.API{
		Session:      handlers.NewSessionHandler(verifier, userService, issuer, revoked),
		Users:        handlers.NewUserHandler(userService),
		NP:           handlers.NewNPHandler(npService),
		Reports:      handlers.NewReportHandler(moderationService),
		Songs:        handlers.NewSongHandler(songService),
		Applications: handlers.NewApplicationHandler(appService),
		Contact:      handlers.NewContactHandler(contactService),
	}

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		api.Routes(r, appMiddleware.SessionAuth(issuer, userService, revoked))
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("NADA admin API starting on %s", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
	notifier.Wait()
	if err := mongo.Close(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}
}
