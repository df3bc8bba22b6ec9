package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/smonzon/registration-service/internal/model"
	"github.com/smonzon/registration-service/internal/repository"
)

const feedListingLimit = 100

// UserLister provides the users listing the feed mirrors.
type UserLister interface {
	List(ctx context.Context, query repository.Query) ([]*model.User, error)
}

// UserFeed keeps a snapshot of the registered-users listing and refetches it
// when notified of a change. Notifications arriving within the debounce
// window are coalesced into a single refetch, so a burst of registrations
// does not trigger a burst of listing queries.
type UserFeed struct {
	lister   UserLister
	debounce time.Duration
	notifyCh chan struct{}

	mu    sync.RWMutex
	users []*model.User
}

// NewUserFeed creates a UserFeed with the given debounce window.
func NewUserFeed(lister UserLister, debounce time.Duration) *UserFeed {
	return &UserFeed{
		lister:   lister,
		debounce: debounce,
		notifyCh: make(chan struct{}, 1),
	}
}

// Notify signals that the users table changed. It never blocks; a
// notification arriving while one is already queued is dropped because the
// pending refetch will observe both changes.
func (f *UserFeed) Notify() {
	select {
	case f.notifyCh <- struct{}{}:
	default:
	}
}

// Run fetches the initial listing and then refetches on change until the
// context is cancelled.
func (f *UserFeed) Run(ctx context.Context) {
	f.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("User feed stopped")
			return
		case <-f.notifyCh:
			f.waitQuiet(ctx)
			f.refresh(ctx)
		}
	}
}

// Snapshot returns the most recently fetched listing.
func (f *UserFeed) Snapshot() []*model.User {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.users
}

// waitQuiet blocks until no notification has arrived for a full debounce
// window.
func (f *UserFeed) waitQuiet(ctx context.Context) {
	timer := time.NewTimer(f.debounce)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-f.notifyCh:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(f.debounce)
		case <-timer.C:
			return
		}
	}
}

func (f *UserFeed) refresh(ctx context.Context) {
	query := repository.NewQuery()
	query.Limit = feedListingLimit

	users, err := f.lister.List(ctx, *query)
	if err != nil {
		slog.Error("Failed to refresh user listing", slog.Any("err", err))
		return
	}

	f.mu.Lock()
	f.users = users
	f.mu.Unlock()

	slog.Info("User listing refreshed", slog.Int("count", len(users)))
}
