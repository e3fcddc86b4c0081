package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/nada/admin/internal/config"
	"github.com/nada/admin/internal/services"
	"github.com/nada/admin/internal/storage"
)

// Eventarc delivers CloudEvents; for GCS finalized events the body contains object info.
type gcsFinalizeEvent struct {
	Bucket   string            `json:"bucket"`
	Name     string            `json:"name"`
	Metadata map[string]string `json:"metadata"`
}

// cloudEventEnvelope handles Eventarc structured content mode where the GCS
// payload is nested inside a "data" field.
type cloudEventEnvelope struct {
	Data gcsFinalizeEvent `json:"data"`
}

type worker struct {
	screener *services.ImageScreener
	objects  *services.GCSBlobStore
}

func main() {
	cfg := config.Load()
	addr := os.Getenv("PORT")
	if addr == "" {
		addr = "8080"
	}
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongo, err := storage.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTransactions)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	defer mongo.Close(context.Background())

	detector, err := services.NewVisionDetector(ctx)
	if err != nil {
		log.Fatalf("vision client: %v", err)
	}
	objects, err := services.NewGCSBlobStore(ctx, cfg.StorageBucket, cfg.FirebaseCredentialsJSON)
	if err != nil {
		log.Fatalf("storage client: %v", err)
	}
	defer objects.Close()

	userStore := services.NewMongoUserStore(ctx, mongo)
	moderation := services.NewModerationService(
		services.NewMongoReportStore(ctx, mongo),
		services.NewMongoContentStore(mongo),
		services.NewMongoSongStore(ctx, mongo),
		userStore,
		mongo,
		nil,
	)
	wk := &worker{screener: services.NewImageScreener(detector, moderation), objects: objects}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	http.HandleFunc("/events", wk.handleFinalize)

	log.Printf("moderation-worker listening on :%s", addr)
	log.Fatal(http.ListenAndServe(":"+addr, nil))
}

func (wk *worker) handleFinalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	log.Printf("[worker] event received: Ce-Type=%s Ce-Subject=%s", r.Header.Get("Ce-Type"), r.Header.Get("Ce-Subject"))

	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("[worker] failed to read request body: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	ev, err := parseEvent(rawBody)
	if err != nil {
		log.Printf("[worker] failed to decode event body: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if ev.Bucket == "" || ev.Name == "" {
		log.Printf("[worker] skipping event: bucket or name is empty")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	// Metadata is not always part of the event payload.
	if ev.Metadata["userId"] == "" {
		md, err := wk.objects.Metadata(ctx, ev.Bucket, ev.Name)
		if err != nil {
			log.Printf("[worker] fetch metadata name=%s failed: %v", ev.Name, err)
		} else {
			ev.Metadata = md
		}
	}

	report, err := wk.screener.Screen(ctx, services.UploadedImage{
		Bucket:   ev.Bucket,
		Name:     ev.Name,
		Metadata: ev.Metadata,
	})
	if err != nil {
		// Eventarc retries on 5xx.
		log.Printf("[worker] screening failed name=%s: %v", ev.Name, err)
		http.Error(w, "screening failed", http.StatusInternalServerError)
		return
	}
	if report != nil {
		log.Printf("[worker] DONE (reported): name=%s report=%s", ev.Name, report.ID)
	} else {
		log.Printf("[worker] DONE (clean): name=%s", ev.Name)
	}
	w.WriteHeader(http.StatusOK)
}

// parseEvent accepts both binary mode (GCS object at top level) and
// structured mode (object nested under "data").
func parseEvent(raw []byte) (gcsFinalizeEvent, error) {
	var ev gcsFinalizeEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return ev, err
	}
	if ev.Bucket != "" && ev.Name != "" {
		return ev, nil
	}
	var envelope cloudEventEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data.Bucket != "" {
		return envelope.Data, nil
	}
	return ev, nil
}
