package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"palmlens/internal/domain"
	"palmlens/internal/fault"
	"palmlens/internal/llm"
	"palmlens/internal/prompt"
	"palmlens/internal/reading"
)

// readingRepository is the subset of store.ReadingStore that ReadingService
// requires.
type readingRepository interface {
	Save(ctx context.Context, rec *domain.ReadingRecord) error
	GetByID(ctx context.Context, id string) (*domain.ReadingRecord, error)
	List(ctx context.Context) ([]*domain.ReadingRecord, error)
	Delete(ctx context.Context, id string) error
}

type ReadingService struct {
	store     readingRepository
	generator llm.Generator
	timeout   time.Duration
	logger    *slog.Logger

	// Injectable for deterministic tests.
	now   func() time.Time
	newID func() string
}

func NewReadingService(store readingRepository, generator llm.Generator, timeout time.Duration, logger *slog.Logger) *ReadingService {
	return &ReadingService{
		store:     store,
		generator: generator,
		timeout:   timeout,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Analyze runs the full pipeline for one request: validate the image, build
// the prompt, make exactly one model call under the time budget, normalize
// the reply, plausibility-check it, and persist the result into history.
func (s *ReadingService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.ReadingRecord, error) {
	if len(req.ImageData) == 0 {
		return nil, fault.New(fault.Validation, "image is required")
	}
	mimeType, ok := allowedImageMIME(req.ImageData)
	if !ok {
		return nil, fault.New(fault.Validation, "unsupported image format")
	}

	s.logger.Info("analysis started", "mime_type", mimeType, "bytes", len(req.ImageData), "has_user_context", req.UserContext != nil)

	p := prompt.BuildAnalysis(req.UserContext, req.HasSecondaryImage)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.Generate(genCtx, llm.GenerateRequest{
		Prompt: p,
		Images: []llm.Image{{Data: req.ImageData, MimeType: mimeType}},
	})
	if err != nil {
		s.logger.Error("model call failed", "error", err)
		return nil, classifyGenerateErr(err)
	}

	rdg, err := reading.Normalize(raw)
	if err != nil {
		s.logger.Error("normalization failed", "error", err, "reply_bytes", len(raw))
		return nil, err
	}
	if err := reading.Validate(rdg); err != nil {
		s.logger.Info("reading rejected by plausibility check", "error", err)
		return nil, err
	}

	rec := &domain.ReadingRecord{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
		Reading:   rdg,
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return nil, fault.Wrap(fault.Internal, "failed to save reading", err)
	}

	s.logger.Info("analysis complete", "reading_id", rec.ID)
	return rec, nil
}

// Chat answers a follow-up question by re-stuffing the supplied reading
// fragment into a fresh prompt. No conversation state is kept server-side;
// the caller resends the full relevant context every turn.
func (s *ReadingService) Chat(ctx context.Context, message string, readingCtx domain.Reading) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fault.New(fault.Validation, "message is required")
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.generator.Generate(genCtx, llm.GenerateRequest{
		Prompt: prompt.BuildChat(message, readingCtx),
	})
	if err != nil {
		s.logger.Error("chat model call failed", "error", err)
		return "", classifyGenerateErr(err)
	}

	return strings.TrimSpace(reply), nil
}

func (s *ReadingService) ListReadings(ctx context.Context) ([]*domain.ReadingRecord, error) {
	return s.store.List(ctx)
}

func (s *ReadingService) GetReading(ctx context.Context, id string) (*domain.ReadingRecord, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fault.New(fault.NotFound, "reading not found")
	}
	return rec, nil
}

func (s *ReadingService) DeleteReading(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// classifyGenerateErr maps a Generate failure into the error taxonomy.
// Adapters already classify missing credentials and empty replies; deadline
// expiry is recognized here so timeouts stay distinct from generic upstream
// failures regardless of which adapter (or test stub) produced them.
func classifyGenerateErr(err error) error {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fault.Wrap(fault.UpstreamTimeout, "the reading took too long, try again", err)
	}
	return fault.Wrap(fault.Internal, "the reading service is unavailable, try again", err)
}
