package services

import (
	"context"
	"log"
	"time"
)

const DefaultInviteSweepInterval = time.Hour

type StaleInviteExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// InviteSweeper periodically rewrites pending invites past their deadline to
// expired. Reads already treat them as expired; the sweep keeps stored status
// and listings in step.
type InviteSweeper struct {
	invites  StaleInviteExpirer
	interval time.Duration
	now      func() time.Time
}

func NewInviteSweeper(invites StaleInviteExpirer, interval time.Duration) *InviteSweeper {
	if interval <= 0 {
		interval = DefaultInviteSweepInterval
	}
	return &InviteSweeper{
		invites:  invites,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (sweeper *InviteSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(sweeper.interval)
	go func() {
		defer ticker.Stop()

		sweeper.Sweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweeper.Sweep(ctx)
			}
		}
	}()
}

func (sweeper *InviteSweeper) Sweep(ctx context.Context) int64 {
	expired, err := sweeper.invites.ExpireStale(ctx, sweeper.now())
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("invites: sweep stale invites failed: %v", err)
		}
		return 0
	}
	if expired > 0 {
		log.Printf("invites: expired %d stale invite(s)", expired)
	}
	return expired
}
