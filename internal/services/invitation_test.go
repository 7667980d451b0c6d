package services

import (
	"context"
	"errors"
	"testing"

	"github.com/example/startupvillage/internal/models"
)

func TestAcceptInvitationWithoutPendingStartup(t *testing.T) {
	f := newFixture()
	svc := NewInvitationService(f.store.Users, f.push)
	user := f.user(t, nil)

	if err := svc.AcceptInvitation(context.Background(), user); !errors.Is(err, ErrNoPendingStartupInvite) {
		t.Fatalf("expected ErrNoPendingStartupInvite, got %v", err)
	}
	f.push.assertIdle(t)
}

func TestAcceptInvitationTransfersMembership(t *testing.T) {
	f := newFixture()
	svc := NewInvitationService(f.store.Users, f.push)
	ctx := context.Background()

	startup := f.startup(t, "acme")
	first := f.user(t, func(u *models.User) { u.StartupID = uintPtr(startup.ID) })
	second := f.user(t, func(u *models.User) { u.StartupID = uintPtr(startup.ID) })
	invitee := f.user(t, func(u *models.User) {
		u.Fullname = "Mike Wazowski"
		u.PendingStartupID = uintPtr(startup.ID)
	})

	if err := svc.AcceptInvitation(ctx, invitee); err != nil {
		t.Fatalf("accept: %v", err)
	}

	stored := f.reload(t, invitee.ID)
	if stored.StartupID == nil || *stored.StartupID != startup.ID {
		t.Fatalf("expected membership of %d, got %v", startup.ID, stored.StartupID)
	}
	if stored.PendingStartupID != nil {
		t.Fatalf("pending startup must be cleared")
	}

	loaded, err := f.store.Startups.FindByID(ctx, startup.ID)
	if err != nil {
		t.Fatalf("load startup: %v", err)
	}
	found := false
	for _, founder := range loaded.Founders {
		if founder.ID == invitee.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("invitee missing from founders %+v", loaded.Founders)
	}

	batch := f.push.wait(t)
	if len(batch) != 2 {
		t.Fatalf("expected notifications for 2 existing founders, got %+v", batch)
	}
	recipients := map[uint]bool{batch[0].UserID: true, batch[1].UserID: true}
	if !recipients[first.ID] || !recipients[second.ID] || recipients[invitee.ID] {
		t.Fatalf("unexpected recipients %+v", batch)
	}

	if err := svc.AcceptInvitation(ctx, stored); !errors.Is(err, ErrNoPendingStartupInvite) {
		t.Fatalf("second accept must fail precondition, got %v", err)
	}
}

func TestAcceptInvitationIgnoresPushFailure(t *testing.T) {
	f := newFixture()
	f.push.err = errBoom
	svc := NewInvitationService(f.store.Users, f.push)

	startup := f.startup(t, "acme")
	f.user(t, func(u *models.User) { u.StartupID = uintPtr(startup.ID) })
	invitee := f.user(t, func(u *models.User) { u.PendingStartupID = uintPtr(startup.ID) })

	if err := svc.AcceptInvitation(context.Background(), invitee); err != nil {
		t.Fatalf("push failure must not fail accept: %v", err)
	}
	f.push.wait(t)
	if f.reload(t, invitee.ID).StartupID == nil {
		t.Fatalf("membership must persist despite push failure")
	}
}

func TestDeclineInvitation(t *testing.T) {
	f := newFixture()
	svc := NewInvitationService(f.store.Users, f.push)
	ctx := context.Background()

	startup := f.startup(t, "acme")
	other := f.startup(t, "other")
	invitee := f.user(t, func(u *models.User) {
		u.StartupID = uintPtr(other.ID)
		u.PendingStartupID = uintPtr(startup.ID)
	})

	if err := svc.DeclineInvitation(ctx, invitee); err != nil {
		t.Fatalf("decline: %v", err)
	}

	stored := f.reload(t, invitee.ID)
	if stored.PendingStartupID != nil {
		t.Fatalf("pending startup must be cleared")
	}
	if stored.StartupID == nil || *stored.StartupID != other.ID {
		t.Fatalf("decline must not touch membership, got %v", stored.StartupID)
	}

	if err := svc.DeclineInvitation(ctx, stored); !errors.Is(err, ErrNoPendingStartupInvite) {
		t.Fatalf("expected ErrNoPendingStartupInvite, got %v", err)
	}
	f.push.assertIdle(t)
}

func TestDeclineInvitationNeverGrantsMembership(t *testing.T) {
	f := newFixture()
	svc := NewInvitationService(f.store.Users, f.push)

	startup := f.startup(t, "acme")
	invitee := f.user(t, func(u *models.User) { u.PendingStartupID = uintPtr(startup.ID) })

	if err := svc.DeclineInvitation(context.Background(), invitee); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if f.reload(t, invitee.ID).StartupID != nil {
		t.Fatalf("decline must not set startup")
	}
}
