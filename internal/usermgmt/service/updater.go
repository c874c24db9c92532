package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/store"
)

const (
	DefaultRemoteLatency     = time.Second
	DefaultRemoteSuccessRate = 0.9
)

// RoleUpdater applies a role change remotely. A nil error means the change
// was accepted and the caller may apply it locally.
type RoleUpdater interface {
	UpdateRole(ctx context.Context, change domain.RoleChange) error
}

type RoleUpdaterFunc func(ctx context.Context, change domain.RoleChange) error

func (f RoleUpdaterFunc) UpdateRole(ctx context.Context, change domain.RoleChange) error {
	return f(ctx, change)
}

// SimulatedUpdater stands in for a remote role API: it waits Latency, then
// fails with probability 1-SuccessRate. Successful calls are forwarded to
// Next when set.
type SimulatedUpdater struct {
	Latency     time.Duration
	SuccessRate float64
	Rand        func() float64 // uniform in [0,1); defaults to math/rand/v2
	Next        RoleUpdater
}

// NewSimulatedUpdater returns an updater with a one second latency and a 90%
// success rate.
func NewSimulatedUpdater(next RoleUpdater) *SimulatedUpdater {
	return &SimulatedUpdater{
		Latency:     DefaultRemoteLatency,
		SuccessRate: DefaultRemoteSuccessRate,
		Next:        next,
	}
}

func (u *SimulatedUpdater) UpdateRole(ctx context.Context, change domain.RoleChange) error {
	if u.Latency > 0 {
		timer := time.NewTimer(u.Latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	roll := rand.Float64
	if u.Rand != nil {
		roll = u.Rand
	}
	if roll() >= u.SuccessRate {
		return fmt.Errorf("%w: simulated failure", domain.ErrRemoteUpdateFailed)
	}

	if u.Next == nil {
		return nil
	}
	if err := u.Next.UpdateRole(ctx, change); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRemoteUpdateFailed, err)
	}
	return nil
}

// StoreUpdater writes role changes to the directory store.
type StoreUpdater struct {
	Store store.Store
}

func (u *StoreUpdater) UpdateRole(ctx context.Context, change domain.RoleChange) error {
	users := u.Store.Users()

	var err error
	if change.Granted {
		err = users.AddRole(ctx, change.Email, change.Role)
	} else {
		err = users.RemoveRole(ctx, change.Email, change.Role)
	}
	if errors.Is(err, store.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}
