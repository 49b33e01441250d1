package dossier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"musicreg/pkg/models"
)

// ErrSaveInProgress is returned when a save is requested while another one
// has not finished yet.
var ErrSaveInProgress = errors.New("save already in progress")

// Remote stores a dossier with the registration service and returns the
// registration id it was stored under.
type Remote interface {
	Save(ctx context.Context, d models.Dossier) (int64, error)
}

// Cache is the local recovery copy of the last saved dossier.
type Cache interface {
	Load() (models.Dossier, bool, error)
	Store(d models.Dossier) error
}

// SaveResult is delivered by SaveAsync.
type SaveResult struct {
	RegistrationID int64
	Err            error
}

// Session is one run of the registration workflow. It owns exactly one
// draft and is not shared between users.
type Session struct {
	remote Remote
	cache  Cache
	logger *log.Logger
	opts   []Option

	draft  *Draft
	saving atomic.Bool

	mu      sync.Mutex
	lastErr string
}

func NewSession(remote Remote, cache Cache, logger *log.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		remote: remote,
		cache:  cache,
		logger: logger,
		opts:   opts,
		draft:  NewDraft(opts...),
	}
}

// Start restores the draft from the recovery cache. A missing, unreadable or
// malformed entry starts an empty draft instead of failing.
func (s *Session) Start() *Draft {
	s.draft = NewDraft(s.opts...)
	if s.cache == nil {
		return s.draft
	}

	cached, found, err := s.cache.Load()
	switch {
	case err != nil:
		s.logger.Printf("[dossier] recovery cache unreadable, starting empty: %v", err)
	case !found:
		s.logger.Printf("[dossier] no cached draft, starting empty")
	default:
		s.draft = FromDossier(cached, s.opts...)
		s.logger.Printf("[dossier] restored draft %q (registration %d)", cached.Title, cached.RegistrationID)
	}
	return s.draft
}

// Draft returns the session's draft.
func (s *Session) Draft() *Draft { return s.draft }

// Saving reports whether a save is outstanding.
func (s *Session) Saving() bool { return s.saving.Load() }

// LastError is the message of the last failed save, "" after a success.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Save sends the current dossier to the registration service. On success the
// returned id is attached to the draft and the dossier is mirrored into the
// recovery cache. On failure the draft is left as it was.
func (s *Session) Save(ctx context.Context) (int64, error) {
	if !s.saving.CompareAndSwap(false, true) {
		return 0, ErrSaveInProgress
	}
	defer s.saving.Store(false)
	return s.save(ctx, s.snapshot())
}

// SaveAsync is Save without blocking the caller. The dossier is captured
// before SaveAsync returns; the result arrives on the returned channel.
func (s *Session) SaveAsync(ctx context.Context) <-chan SaveResult {
	out := make(chan SaveResult, 1)
	if !s.saving.CompareAndSwap(false, true) {
		out <- SaveResult{Err: ErrSaveInProgress}
		close(out)
		return out
	}

	snapshot := s.snapshot()
	go func() {
		defer close(out)
		defer s.saving.Store(false)
		id, err := s.save(ctx, snapshot)
		out <- SaveResult{RegistrationID: id, Err: err}
	}()
	return out
}

// snapshot is the dossier to send. Its checklist is derived from the draft
// as it is now, not the one carried over from the recovery cache.
func (s *Session) snapshot() models.Dossier {
	d := s.draft.Dossier()
	d.Checklist = Derive(s.draft)
	return d
}

func (s *Session) save(ctx context.Context, snapshot models.Dossier) (int64, error) {
	if s.remote == nil {
		return 0, s.fail(errors.New("no registration service configured"))
	}

	id, err := s.remote.Save(ctx, snapshot)
	if err != nil {
		return 0, s.fail(err)
	}

	s.draft.setRegistrationID(id)
	s.setLastError("")
	s.logger.Printf("[dossier] saved registration %d", id)

	if s.cache != nil {
		snapshot.RegistrationID = id
		if err := s.cache.Store(snapshot); err != nil {
			s.logger.Printf("[dossier] write recovery cache: %v", err)
		}
	}
	return id, nil
}

func (s *Session) fail(err error) error {
	s.setLastError(fmt.Sprintf("could not save registration: %v", err))
	s.logger.Printf("[dossier] save failed: %v", err)
	return fmt.Errorf("save registration: %w", err)
}

func (s *Session) setLastError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
