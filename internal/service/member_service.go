package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/notify"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/repository"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/store"

	"go.uber.org/zap"
)

// MemberService is the member store: append-only registrations over an
// interchangeable backing source, with read-side aggregation.
//
// Append reads existing phones and then writes without holding any lock,
// so two simultaneous registrations of the same phone may both succeed.
type MemberService struct {
	repo                repository.MembersRepo
	cache               store.KV
	cacheTTL            time.Duration
	requireNeighborhood bool
	notifier            notify.Notifier
	now                 func() time.Time
	logger              *zap.Logger
}

// MemberServiceOptions optional collaborators; zero values disable them.
type MemberServiceOptions struct {
	Cache               store.KV
	CacheTTL            time.Duration
	RequireNeighborhood bool
	Notifier            notify.Notifier
	Clock               func() time.Time
}

func NewMemberService(repo repository.MembersRepo, opts MemberServiceOptions, logger *zap.Logger) *MemberService {
	if opts.Notifier == nil {
		opts.Notifier = notify.NopNotifier{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &MemberService{
		repo:                repo,
		cache:               opts.Cache,
		cacheTTL:            opts.CacheTTL,
		requireNeighborhood: opts.RequireNeighborhood,
		notifier:            opts.Notifier,
		now:                 opts.Clock,
		logger:              logger,
	}
}

// ListAll loads every member in source order. The result may be up to the
// cache TTL old. On failure it returns an empty snapshot and an error
// matching domain.ErrDataUnavailable.
func (s *MemberService) ListAll(ctx context.Context) (*domain.Snapshot, error) {
	t, err := s.loadTable(ctx, true)
	if err != nil {
		s.logger.Error("Failed to load members", zap.String("backend", s.repo.Name()), zap.Error(err))
		return domain.EmptySnapshot(), fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
	return domain.BuildSnapshot(t), nil
}

// Append registers m after validating it and checking its normalized phone
// against a fresh read of the source. Nothing is written on any failure and
// nothing is retried.
func (s *MemberService) Append(ctx context.Context, m domain.Member) (*domain.Member, error) {
	m = m.Trimmed()
	m.Extra = nil
	if err := m.Validate(s.requireNeighborhood); err != nil {
		return nil, err
	}
	phone := domain.NormalizePhone(m.Phone)

	t, err := s.loadTable(ctx, false)
	switch {
	case errors.Is(err, repository.ErrNoHeader):
		// the adapter writes the default header with the first row
		s.logger.Info("Members destination has no header yet", zap.String("backend", s.repo.Name()))
		t = &domain.Table{}
	case err != nil:
		s.logger.Error("Failed to reload members before append", zap.String("backend", s.repo.Name()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
	current := domain.BuildSnapshot(t)
	if current.Len() > 0 && !current.Has(domain.FieldPhone) {
		return nil, fmt.Errorf("%w: %s", domain.ErrColumnNotFound, domain.FieldPhone)
	}
	if _, dup := current.PhoneSet()[phone]; dup {
		s.logger.Info("Duplicate phone rejected", zap.String("backend", s.repo.Name()))
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatePhone, m.Phone)
	}

	m.RegisteredAt = s.now().Format(domain.RegisteredAtLayout)
	if err := s.repo.AppendMember(ctx, m); err != nil {
		s.logger.Error("Failed to append member", zap.String("backend", s.repo.Name()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	s.invalidate(ctx)

	if err := s.notifier.MemberRegistered(ctx, m); err != nil {
		s.logger.Warn("Failed to publish registration event", zap.Error(err))
	}
	s.logger.Info("Member registered",
		zap.String("backend", s.repo.Name()),
		zap.String("neighborhood", m.Neighborhood),
		zap.Int("members_before", current.Len()),
	)
	return &m, nil
}

// GroupByNeighborhood aggregates an already-loaded snapshot.
func (s *MemberService) GroupByNeighborhood(snap *domain.Snapshot) (*domain.NeighborhoodStats, error) {
	return domain.GroupByNeighborhood(snap)
}

func (s *MemberService) cacheKey() string {
	return "members:table:" + s.repo.Name()
}

func (s *MemberService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *MemberService) loadTable(ctx context.Context, useCache bool) (*domain.Table, error) {
	if useCache && s.cacheEnabled() {
		raw, err := s.cache.Get(ctx, s.cacheKey())
		switch {
		case err == nil:
			var t domain.Table
			if jerr := json.Unmarshal([]byte(raw), &t); jerr == nil {
				return &t, nil
			}
			s.logger.Warn("Discarding unreadable cached members table")
		case !errors.Is(err, store.ErrMiss):
			s.logger.Warn("Members cache read failed", zap.Error(err))
		}
	}

	t, err := s.repo.LoadTable(ctx)
	if err != nil {
		return nil, err
	}
	if s.cacheEnabled() {
		if b, err := json.Marshal(t); err == nil {
			if err := s.cache.Set(ctx, s.cacheKey(), string(b), s.cacheTTL); err != nil {
				s.logger.Warn("Members cache write failed", zap.Error(err))
			}
		}
	}
	return t, nil
}

func (s *MemberService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cacheKey()); err != nil {
		s.logger.Warn("Members cache invalidation failed", zap.Error(err))
	}
}
