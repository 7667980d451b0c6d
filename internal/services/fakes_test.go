package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/repository"
	"github.com/example/startupvillage/internal/repository/memory"
)

type sentSMS struct {
	msisdn string
	text   string
}

type fakeSMS struct {
	sent chan sentSMS
	err  error
}

func newFakeSMS() *fakeSMS {
	return &fakeSMS{sent: make(chan sentSMS, 8)}
}

func (f *fakeSMS) Send(_ context.Context, msisdn, text string) error {
	f.sent <- sentSMS{msisdn: msisdn, text: text}
	return f.err
}

func (f *fakeSMS) wait(t *testing.T) sentSMS {
	t.Helper()
	select {
	case msg := <-f.sent:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("sms was not dispatched")
		return sentSMS{}
	}
}

type fakePush struct {
	calls chan []PushNotification
	err   error
}

func newFakePush() *fakePush {
	return &fakePush{calls: make(chan []PushNotification, 8)}
}

func (f *fakePush) Notify(_ context.Context, notifications []PushNotification) error {
	f.calls <- notifications
	return f.err
}

func (f *fakePush) wait(t *testing.T) []PushNotification {
	t.Helper()
	select {
	case batch := <-f.calls:
		return batch
	case <-time.After(2 * time.Second):
		t.Fatalf("push notifications were not dispatched")
		return nil
	}
}

func (f *fakePush) assertIdle(t *testing.T) {
	t.Helper()
	select {
	case batch := <-f.calls:
		t.Fatalf("unexpected push dispatch: %+v", batch)
	case <-time.After(50 * time.Millisecond):
	}
}

type fixture struct {
	store repository.Store
	sms   *fakeSMS
	push  *fakePush
}

func newFixture() *fixture {
	return &fixture{
		store: memory.NewStore(),
		sms:   newFakeSMS(),
		push:  newFakePush(),
	}
}

func (f *fixture) user(t *testing.T, mutate func(*models.User)) *models.User {
	t.Helper()
	u := &models.User{Fullname: "Test User"}
	if mutate != nil {
		mutate(u)
	}
	if err := f.store.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (f *fixture) reload(t *testing.T, id uint) *models.User {
	t.Helper()
	u, err := f.store.Users.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("reload user %d: %v", id, err)
	}
	return u
}

func (f *fixture) startup(t *testing.T, name string) *models.Startup {
	t.Helper()
	s := &models.Startup{Name: name, Slug: name}
	if err := f.store.Startups.Create(context.Background(), s); err != nil {
		t.Fatalf("create startup: %v", err)
	}
	return s
}

func uintPtr(v uint) *uint { return &v }

var errBoom = errors.New("boom")
