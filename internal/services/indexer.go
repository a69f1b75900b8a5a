package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumatch/api/internal/repositories"
)

// chunk sizing for resume profile embeddings.
const (
	indexChunkSize    = 1000
	indexChunkOverlap = 100
)

// Indexer embeds resume profiles into the vector store in the background so
// candidate search stays off the request path.
type Indexer interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(resumeID uuid.UUID)
	// IndexResume embeds a single resume synchronously. The background
	// workers use it too; it is exported for the reindex tool.
	IndexResume(ctx context.Context, resumeID uuid.UUID) error
}

type indexer struct {
	resumeRepo  repositories.ResumeRepository
	gemini      GeminiService
	qdrant      QdrantService
	chunker     TextChunker
	concurrency int
	poll        time.Duration
	queue       chan uuid.UUID
	stopChan    chan struct{}
	wg          sync.WaitGroup
	logger      *zap.Logger
}

func NewIndexer(
	resumeRepo repositories.ResumeRepository,
	gemini GeminiService,
	qdrant QdrantService,
	concurrency int,
	poll time.Duration,
	log *zap.Logger,
) Indexer {
	return &indexer{
		resumeRepo:  resumeRepo,
		gemini:      gemini,
		qdrant:      qdrant,
		chunker:     NewTextChunker(),
		concurrency: concurrency,
		poll:        poll,
		queue:       make(chan uuid.UUID, 100),
		stopChan:    make(chan struct{}),
		logger:      log,
	}
}

// Start implements Indexer.
func (w *indexer) Start(ctx context.Context) {
	w.logger.Info("starting resume indexer", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.process(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnindexed()
}

// Stop implements Indexer.
func (w *indexer) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("resume indexer stopped")
}

// Enqueue implements Indexer.
func (w *indexer) Enqueue(resumeID uuid.UUID) {
	select {
	case w.queue <- resumeID:
	case <-w.stopChan:
		w.logger.Warn("indexer stopped, dropping resume", zap.String("resume_id", resumeID.String()))
	}
}

func (w *indexer) process(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case resumeID := <-w.queue:
			if err := w.IndexResume(ctx, resumeID); err != nil {
				w.logger.Warn("failed to index resume",
					zap.Int("worker", workerID),
					zap.String("resume_id", resumeID.String()),
					zap.Error(err),
				)
			}
		}
	}
}

// pollUnindexed re-enqueues resumes whose indexing was missed or failed.
func (w *indexer) pollUnindexed() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			resumes, err := w.resumeRepo.FindUnindexed(10)
			if err != nil {
				w.logger.Warn("failed to fetch unindexed resumes", zap.Error(err))
				continue
			}

			for _, resume := range resumes {
				w.Enqueue(resume.ID)
			}
		}
	}
}

// IndexResume implements Indexer.
func (w *indexer) IndexResume(ctx context.Context, resumeID uuid.UUID) error {
	resume, err := w.resumeRepo.FindByID(resumeID)
	if err != nil {
		return err
	}

	text := renderResume(resume)
	if text == "" {
		// Nothing to embed; mark done so the poller stops retrying it.
		return w.resumeRepo.MarkIndexed(resumeID)
	}

	for _, chunk := range w.chunker.ChunkText(text, indexChunkSize, indexChunkOverlap) {
		embedding, err := w.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return err
		}
		if err := w.qdrant.UpsertResumeChunk(ctx, resume.ID, chunk, embedding); err != nil {
			return err
		}
	}

	return w.resumeRepo.MarkIndexed(resumeID)
}
