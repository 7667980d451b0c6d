package services

import (
	"context"
	"errors"
	"testing"

	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/phone"
)

func newContactService(f *fixture) *ContactService {
	return NewContactService(f.store.Users, f.store.Connections, phone.NewNormalizer("IN"))
}

func TestAddContact(t *testing.T) {
	f := newFixture()
	svc := newContactService(f)
	ctx := context.Background()
	owner := f.user(t, nil)

	contact, err := svc.AddContact(ctx, owner, NewContact{
		Phone:       "+919876543210",
		Fullname:    "Mike Wazowski",
		Company:     "Monsters, Inc.",
		Designation: "Scarer",
	})
	if err != nil {
		t.Fatalf("add contact: %v", err)
	}

	stored := f.reload(t, contact.ID)
	if !stored.IsContact || stored.HasPassword() || stored.Email != nil {
		t.Fatalf("contact must be credential-less, got %+v", stored)
	}
	if stored.Fullname != "Mike Wazowski" || stored.Company != "Monsters, Inc." || stored.Designation != "Scarer" {
		t.Fatalf("unexpected profile %+v", stored)
	}
	if models.StringValue(stored.Phone) != "919876543210" {
		t.Fatalf("expected normalized phone, got %q", models.StringValue(stored.Phone))
	}

	added, err := f.store.Connections.ListContacts(ctx, owner.ID, models.DirectionUserToSV)
	if err != nil {
		t.Fatalf("list user-added: %v", err)
	}
	if len(added) != 1 || added[0].ID != contact.ID {
		t.Fatalf("expected connection to new contact, got %+v", added)
	}
}

func TestAddContactRejectsInvalidPhone(t *testing.T) {
	f := newFixture()
	svc := newContactService(f)
	owner := f.user(t, nil)

	if _, err := svc.AddContact(context.Background(), owner, NewContact{Phone: "123456", Fullname: "Mike"}); !errors.Is(err, ErrInvalidPhoneNumber) {
		t.Fatalf("expected ErrInvalidPhoneNumber, got %v", err)
	}
}

func TestListContactsOnlyPlatformSupplied(t *testing.T) {
	f := newFixture()
	svc := newContactService(f)
	ctx := context.Background()
	owner := f.user(t, nil)

	c1 := f.user(t, func(u *models.User) { u.IsContact = true; u.Fullname = "C1" })
	c2 := f.user(t, func(u *models.User) { u.IsContact = true; u.Fullname = "C2" })
	c3 := f.user(t, func(u *models.User) { u.IsContact = true; u.Fullname = "C3" })
	for _, edge := range []struct {
		contact *models.User
		dir     models.ConnectionDirection
	}{
		{c1, models.DirectionSVToUser},
		{c2, models.DirectionUserToSV},
		{c3, models.DirectionSVToUser},
	} {
		if err := f.store.Connections.Create(ctx, &models.Connection{UserID: owner.ID, ContactID: edge.contact.ID, Direction: edge.dir}); err != nil {
			t.Fatalf("create connection: %v", err)
		}
	}

	got, err := svc.ListContacts(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Fullname != "C1" || got[1].Fullname != "C3" {
		t.Fatalf("expected [C1 C3], got %+v", got)
	}
}

func TestListContactsEmpty(t *testing.T) {
	f := newFixture()
	svc := newContactService(f)

	got, err := svc.ListContacts(context.Background(), f.user(t, nil))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
