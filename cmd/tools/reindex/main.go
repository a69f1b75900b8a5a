package main

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"resumatch/api/internal/config"
	"resumatch/api/internal/logger"
	"resumatch/api/internal/repositories"
	"resumatch/api/internal/services"
)

// Rebuilds the resume vector store from scratch: clears every indexed flag,
// then re-embeds all resumes with bounded concurrency.
func main() {
	log.Println("🚀 Starting resume reindex...")

	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	resumeRepo := repositories.NewResumeRepository(db)

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini, zlog)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}
	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	indexer := services.NewIndexer(
		resumeRepo,
		geminiService,
		qdrantService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
		zlog,
	)

	if err := resumeRepo.ResetIndexed(); err != nil {
		log.Fatalf("❌ Failed to reset indexed flags: %v", err)
	}

	var mu sync.Mutex
	successCount := 0
	failCount := 0
	attempted := map[uuid.UUID]bool{}

	for {
		page, err := resumeRepo.FindUnindexed(50)
		if err != nil {
			log.Fatalf("❌ Failed to fetch unindexed resumes: %v", err)
		}

		var g errgroup.Group
		g.SetLimit(cfg.Worker.Concurrency)

		fresh := 0
		for _, resume := range page {
			if attempted[resume.ID] {
				continue
			}
			attempted[resume.ID] = true
			fresh++

			resumeID := resume.ID
			g.Go(func() error {
				log.Printf("📄 Indexing resume %s", resumeID)
				if err := indexer.IndexResume(ctx, resumeID); err != nil {
					// Left unindexed; the API's background poller retries.
					log.Printf("   ❌ Failed %s: %v", resumeID, err)
					mu.Lock()
					failCount++
					mu.Unlock()
					return nil
				}
				mu.Lock()
				successCount++
				mu.Unlock()
				return nil
			})
		}
		g.Wait()

		if fresh == 0 {
			break
		}
	}

	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Reindex Summary:")
	log.Printf("   ✅ Successful: %d resumes", successCount)
	log.Printf("   ❌ Failed: %d resumes", failCount)
	log.Println(strings.Repeat("=", 60))
}
