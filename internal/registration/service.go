package registration

import (
	"context"
	"log"
	"time"

	"musicreg/internal/dossier"
	synchub "musicreg/internal/sync"
	"musicreg/pkg/models"
)

// Publisher receives an event after every successful write.
type Publisher interface {
	Publish(ev synchub.RegistrationEvent)
}

// Service is the registration store as seen by the HTTP and gRPC layers:
// validation, a read cache in front of the repo, and change events.
type Service struct {
	repo   *Repo
	cache  *readCache
	pub    Publisher
	logger *log.Logger
	now    func() time.Time
}

func NewService(repo *Repo, pub Publisher, cacheTTL time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		repo:   repo,
		cache:  newReadCache(cacheTTL),
		pub:    pub,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, userID string, d models.Dossier) (models.Registration, error) {
	d, err := Normalize(d, s.now())
	if err != nil {
		return models.Registration{}, err
	}
	reg, err := s.repo.Create(ctx, userID, d)
	if err != nil {
		return models.Registration{}, err
	}
	s.cache.set(reg)
	s.publish(synchub.EventCreated, reg)
	return reg, nil
}

func (s *Service) Update(ctx context.Context, id int64, userID string, d models.Dossier) (models.Registration, error) {
	d, err := Normalize(d, s.now())
	if err != nil {
		return models.Registration{}, err
	}
	s.cache.invalidate(id)
	reg, err := s.repo.Update(ctx, id, userID, d)
	if err != nil {
		return models.Registration{}, err
	}
	s.cache.set(reg)
	s.publish(synchub.EventUpdated, reg)
	return reg, nil
}

// Get reads through the cache.
func (s *Service) Get(ctx context.Context, id int64) (models.Registration, error) {
	if reg, ok := s.cache.get(id); ok {
		return reg, nil
	}
	reg, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Registration{}, err
	}
	s.cache.set(reg)
	return reg, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]models.Registration, int, error) {
	if f.Genre != "" {
		if g := models.NormalizeGenre(f.Genre); g != "" {
			f.Genre = g
		}
	}
	return s.repo.List(ctx, f)
}

func (s *Service) Delete(ctx context.Context, id int64, userID string) error {
	s.cache.invalidate(id)
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.publish(synchub.EventDeleted, models.Registration{ID: id, UserID: userID})
	return nil
}

// CachedItems is the number of registrations held in the read cache.
func (s *Service) CachedItems() int { return s.cache.len() }

func (s *Service) publish(typ string, reg models.Registration) {
	if s.pub == nil {
		return
	}
	ev := synchub.RegistrationEvent{
		Type:           typ,
		UserID:         reg.UserID,
		RegistrationID: reg.ID,
		Title:          reg.Title,
		At:             s.now().UTC(),
	}
	if typ != synchub.EventDeleted {
		ev.Progress = dossier.Progress(reg.Checklist)
	}
	s.pub.Publish(ev)
	s.logger.Printf("[registration] %s id=%d user=%s", typ, reg.ID, reg.UserID)
}
