// Package services coordinates sanitization, validation outcomes, the
// completion call, persistence and response shaping.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"text-assistant/aiclient"
	"text-assistant/dto"
	"text-assistant/events"
	"text-assistant/logger"
	"text-assistant/models"
	"text-assistant/prompts"
	"text-assistant/repositories"
	"text-assistant/sanitize"
	"text-assistant/trace"
)

// summaryTextLimit caps text lengths in history list views.
const summaryTextLimit = 100

// Completer is the slice of the AI client the pipeline needs.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, params aiclient.Params) (*aiclient.CompletionResult, error)
	Analyze(ctx context.Context, text string) aiclient.AnalysisResult
	Model() string
}

// RecordStore is the slice of the repository the pipeline needs.
// Insert assigns the record's ID on success.
type RecordStore interface {
	Insert(ctx context.Context, rec *models.ModificationRecord) error
	ListByUser(ctx context.Context, opt repositories.ListOptions) ([]models.ModificationRecord, int64, error)
	AggregateUserStats(ctx context.Context, userID string) (*repositories.UserStats, error)
}

// TextService runs the modification pipeline and the read paths over
// persisted records. Collaborators are injected at construction; there
// is no package-level state.
type TextService struct {
	completer Completer
	store     RecordStore
	publisher events.Publisher
}

func NewTextService(completer Completer, store RecordStore, publisher events.Publisher) *TextService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &TextService{completer: completer, store: store, publisher: publisher}
}

// Process runs one request through sanitize → prompt → complete →
// metrics → persist → shape. The request must already have passed
// validation. Failures come back as *ProcessingError.
func (s *TextService) Process(ctx context.Context, req dto.ModificationRequest) (resp *dto.ModificationResponse, procErr *ProcessingError) {
	op, ok := models.ParseOperation(req.Operation)
	if !ok {
		// Validation rejects unknown operations before this point.
		return nil, &ProcessingError{Op: models.Operation(req.Operation), Kind: KindInternal, Retryable: false,
			Err: fmt.Errorf("unknown operation %q reached the pipeline", req.Operation)}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorWithFields("panic in modification pipeline", logger.Fields{
				"operation":  op.String(),
				"panic":      fmt.Sprint(r),
				"request_id": trace.RequestIDFromContext(ctx),
			})
			resp = nil
			procErr = &ProcessingError{Op: op, Kind: KindInternal, Retryable: true, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	sanitized := sanitize.Clean(req.Text)
	if sanitized == "" {
		return nil, &ProcessingError{Op: op, Kind: KindEmptyInput, Retryable: false,
			Err: errors.New("text is empty after sanitization")}
	}

	params := aiclient.ParamsFromOptions(req.Options)
	systemPrompt, userPrompt := prompts.Build(sanitized, op, req.TargetLanguage)

	logger.InfoWithFields("processing text modification", logger.Fields{
		"operation":   op.String(),
		"text_length": len(sanitized),
		"user_id":     req.UserID,
		"request_id":  trace.RequestIDFromContext(ctx),
	})

	// A disconnecting caller does not cancel the in-flight completion
	// or the persist that follows it; the client's own timeout still
	// bounds the call.
	callCtx := context.WithoutCancel(ctx)

	start := time.Now()
	result, err := s.completer.Complete(callCtx, systemPrompt, userPrompt, params)
	processingTime := time.Since(start).Seconds()
	if err != nil {
		var cerr *aiclient.CompletionError
		if errors.As(err, &cerr) {
			return nil, &ProcessingError{Op: op, Kind: KindCompletion, Retryable: cerr.Retryable, Err: cerr}
		}
		return nil, &ProcessingError{Op: op, Kind: KindInternal, Retryable: true, Err: err}
	}

	confidence := result.Confidence
	response := &dto.ModificationResponse{
		OriginalText:      sanitized,
		ModifiedText:      result.ModifiedText,
		Operation:         op,
		Timestamp:         time.Now().UTC(),
		ProcessingTime:    processingTime,
		UserID:            req.UserID,
		AIModelUsed:       s.completer.Model(),
		ConfidenceScore:   &confidence,
		WordCountOriginal: sanitize.WordCount(sanitized),
		WordCountModified: sanitize.WordCount(result.ModifiedText),
		Metadata: map[string]any{
			"finish_reason": result.FinishReason,
			"model":         result.ModelEcho,
		},
	}

	s.persistRecord(callCtx, req, op, response)

	logger.InfoWithFields("text modification completed", logger.Fields{
		"operation":         op.String(),
		"processing_time":   processingTime,
		"user_id":           req.UserID,
		"word_count_change": response.WordCountModified - response.WordCountOriginal,
		"request_id":        trace.RequestIDFromContext(ctx),
	})

	return response, nil
}

// persistRecord writes the audit row and publishes the completion
// event. Both are best effort: losing the audit trail is acceptable,
// losing the answer is not.
func (s *TextService) persistRecord(ctx context.Context, req dto.ModificationRequest, op models.Operation, resp *dto.ModificationResponse) {
	rec := &models.ModificationRecord{
		UserID:             req.UserID,
		OriginalText:       resp.OriginalText,
		ModifiedText:       resp.ModifiedText,
		Operation:          op,
		Timestamp:          resp.Timestamp,
		ProcessingTime:     resp.ProcessingTime,
		AIModelUsed:        resp.AIModelUsed,
		ConfidenceScore:    resp.ConfidenceScore,
		WordCountOriginal:  resp.WordCountOriginal,
		WordCountModified:  resp.WordCountModified,
		SourceApplication:  req.SourceApplication,
		WindowTitle:        req.WindowTitle,
		TargetLanguage:     req.TargetLanguage,
		PreserveFormatting: req.PreserveFormattingOrDefault(),
		Options:            req.Options,
		Metadata:           resp.Metadata,
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		logger.ErrorWithFields("failed to store modification record", logger.Fields{
			"error":      err.Error(),
			"operation":  op.String(),
			"user_id":    req.UserID,
			"request_id": trace.RequestIDFromContext(ctx),
		})
		return
	}

	event := events.ModificationCompleted{
		ID:                rec.ID.Hex(),
		UserID:            rec.UserID,
		Operation:         rec.Operation,
		AIModelUsed:       rec.AIModelUsed,
		ProcessingTime:    rec.ProcessingTime,
		WordCountOriginal: rec.WordCountOriginal,
		WordCountModified: rec.WordCountModified,
		Timestamp:         rec.Timestamp,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.WarnWithFields("failed to publish modification event", logger.Fields{
			"error":      err.Error(),
			"operation":  op.String(),
			"request_id": trace.RequestIDFromContext(ctx),
		})
	}
}

// Analyze sanitizes the text and asks the completer for a structured
// analysis; the completer degrades to a local fallback on its own.
func (s *TextService) Analyze(ctx context.Context, text, userID string) (aiclient.AnalysisResult, *ProcessingError) {
	sanitized := sanitize.Clean(text)
	if sanitized == "" {
		return aiclient.AnalysisResult{}, &ProcessingError{
			Op: models.OpAnalyze, Kind: KindEmptyInput, Retryable: false,
			Err: errors.New("text is empty after sanitization"),
		}
	}

	logger.InfoWithFields("analyzing text", logger.Fields{
		"text_length": len(sanitized),
		"user_id":     userID,
		"request_id":  trace.RequestIDFromContext(ctx),
	})

	return s.completer.Analyze(context.WithoutCancel(ctx), sanitized), nil
}

// History returns one page of a user's modification history, most
// recent first. Texts are truncated; list views never return full
// text.
func (s *TextService) History(ctx context.Context, userID string, page, pageSize int, opFilter models.Operation) (*dto.HistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	records, total, err := s.store.ListByUser(ctx, repositories.ListOptions{
		UserID:    userID,
		Page:      page,
		PageSize:  pageSize,
		Operation: opFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve modification history: %w", err)
	}

	summaries := make([]dto.ModificationSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, dto.ModificationSummary{
			ID:                rec.ID.Hex(),
			OriginalText:      sanitize.Truncate(rec.OriginalText, summaryTextLimit),
			ModifiedText:      sanitize.Truncate(rec.ModifiedText, summaryTextLimit),
			Operation:         rec.Operation,
			Timestamp:         rec.Timestamp,
			ProcessingTime:    rec.ProcessingTime,
			AIModelUsed:       rec.AIModelUsed,
			ConfidenceScore:   rec.ConfidenceScore,
			WordCountOriginal: rec.WordCountOriginal,
			WordCountModified: rec.WordCountModified,
		})
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &dto.HistoryResponse{
		UserID:             userID,
		TotalModifications: total,
		Modifications:      summaries,
		Page:               page,
		PageSize:           pageSize,
		TotalPages:         totalPages,
	}, nil
}

// UserStats aggregates a user's history. A user without records gets
// the zero-shaped response, not an error.
func (s *TextService) UserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	stats, err := s.store.AggregateUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("retrieve user statistics: %w", err)
	}

	if stats == nil {
		return &dto.UserStatsResponse{
			UserID:              userID,
			OperationsBreakdown: map[string]int64{},
		}, nil
	}

	breakdown := make(map[string]int64, len(stats.Operations))
	for _, op := range stats.Operations {
		breakdown[op]++
	}

	return &dto.UserStatsResponse{
		UserID:              userID,
		TotalModifications:  stats.TotalModifications,
		TotalProcessingTime: round2(stats.TotalProcessingTime),
		AvgProcessingTime:   round2(stats.AvgProcessingTime),
		TotalWordsProcessed: stats.TotalWordsProcessed,
		OperationsBreakdown: breakdown,
		FirstModification:   stats.FirstModification,
		LastModification:    stats.LastModification,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
