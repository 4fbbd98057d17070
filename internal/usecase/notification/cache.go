package notification

import "context"

// UnreadCache caches per-user unread counts. The store stays authoritative,
// every mutation invalidates.
type UnreadCache interface {
	Get(ctx context.Context, userID uint) (int64, bool, error)
	Set(ctx context.Context, userID uint, n int64) error
	Invalidate(ctx context.Context, userID uint) error
}

type NoCache struct{}

func (NoCache) Get(context.Context, uint) (int64, bool, error) { return 0, false, nil }

func (NoCache) Set(context.Context, uint, int64) error { return nil }

func (NoCache) Invalidate(context.Context, uint) error { return nil }
