// Package assistant drives the request/response cycle of the business
// assistant: aggregate metrics, compose the prompt, call the completion
// service and record both sides of the exchange on the thread.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/padraigk/florin/internal/db"
	"github.com/padraigk/florin/internal/llm"
	"github.com/padraigk/florin/internal/metrics"
	"github.com/padraigk/florin/internal/models"
	"github.com/padraigk/florin/internal/prompt"
)

// Apology replaces the assistant reply when the completion call fails, so
// the thread always reflects what the user saw. The underlying cause is
// logged, never shown.
const Apology = "I apologize, but I encountered an error processing your request. Please try again."

// ErrEmptyMessage rejects submissions whose trimmed content is empty.
var ErrEmptyMessage = errors.New("empty message")

// Service orchestrates one user submission at a time per thread.
type Service struct {
	db     *db.Database
	oracle llm.Oracle
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(database *db.Database, oracle llm.Oracle, logger *zap.Logger) *Service {
	return &Service{
		db:     database,
		oracle: oracle,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// threadLock returns the mutex serializing submissions for a thread. Two
// concurrent submissions would otherwise race on the full-list message
// overwrite and the last writer would silently win.
func (s *Service) threadLock(threadID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[threadID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[threadID] = lock
	}
	return lock
}

// Chat handles a single user submission. When threadID is empty a new
// thread is created first. The user message is persisted before the
// completion call so it survives an oracle failure; on failure the apology
// message is appended in place of a reply.
func (s *Service) Chat(ctx context.Context, ownerID int64, threadID, message string) (*models.Thread, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if ownerID <= 0 {
		return nil, db.ErrNotAuthenticated
	}

	if threadID == "" {
		thread, err := s.db.CreateThread(ctx, ownerID, models.DefaultThreadTitle, nil)
		if err != nil {
			return nil, err
		}
		threadID = thread.ID
	}

	lock := s.threadLock(threadID)
	lock.Lock()
	defer lock.Unlock()

	thread, err := s.db.GetThread(ctx, ownerID, threadID)
	if err != nil {
		return nil, err
	}

	// History for the prompt is the trailing slice from before this
	// submission; the new message is rendered separately.
	history := thread.LastMessages(prompt.HistoryLimit)

	now := time.Now().UTC()
	thread.Messages = append(thread.Messages, models.Message{
		Role:      models.RoleUser,
		Content:   message,
		Timestamp: now,
	})
	if err := s.db.ReplaceMessages(ctx, thread.ID, thread.Messages); err != nil {
		return nil, err
	}

	if thread.Title == models.DefaultThreadTitle {
		if title := prompt.DeriveTitle(message); title != models.DefaultThreadTitle {
			if err := s.db.RenameThread(ctx, thread.ID, title); err != nil {
				return nil, err
			}
			thread.Title = title
		}
	}

	snap, err := s.db.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	composed := prompt.Compose(metrics.Aggregate(snap, time.Now().UTC()), message, history)

	s.logger.Debug("submitting prompt",
		zap.String("thread_id", thread.ID),
		zap.Int("history_len", len(history)),
		zap.Int("prompt_tokens", prompt.CountTokens(composed)))

	reply, err := s.oracle.Generate(ctx, composed)
	if err != nil {
		s.logger.Error("completion failed, substituting apology",
			zap.String("thread_id", thread.ID),
			zap.Error(err))
		reply = Apology
	}

	thread.Messages = append(thread.Messages, models.Message{
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC(),
	})
	if err := s.db.ReplaceMessages(ctx, thread.ID, thread.Messages); err != nil {
		return nil, err
	}
	thread.UpdatedAt = time.Now().UTC()

	return thread, nil
}

// Summary computes the current metrics summary for the owner.
func (s *Service) Summary(ctx context.Context, ownerID int64) (metrics.Summary, error) {
	snap, err := s.db.Snapshot(ctx, ownerID)
	if err != nil {
		return metrics.Summary{}, err
	}
	return metrics.Aggregate(snap, time.Now().UTC()), nil
}
