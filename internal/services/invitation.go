package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/repository"
)

// InvitationService moves users from a pending cofounder invitation into
// startup membership.
type InvitationService struct {
	users repository.UserRepository
	push  PushNotifier
}

// NewInvitationService constructs an InvitationService.
func NewInvitationService(users repository.UserRepository, push PushNotifier) *InvitationService {
	return &InvitationService{users: users, push: push}
}

// AcceptInvitation makes the user a founder of their pending startup and tells
// the startup's other founders about it.
func (s *InvitationService) AcceptInvitation(ctx context.Context, user *models.User) error {
	if user.PendingStartupID == nil {
		return ErrNoPendingStartupInvite
	}

	startupID := *user.PendingStartupID
	user.StartupID = &startupID
	user.PendingStartupID = nil
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save accepted invitation: %w", err)
	}

	founders, err := s.users.ListByStartup(ctx, startupID)
	if err != nil {
		log.Printf("[Push] Failed to load founders of startup %d: %v", startupID, err)
		return nil
	}

	dispatchPush(s.push, cofounderJoinedNotifications(user, founders))
	return nil
}

// DeclineInvitation drops the pending invitation. Membership is untouched.
func (s *InvitationService) DeclineInvitation(ctx context.Context, user *models.User) error {
	if user.PendingStartupID == nil {
		return ErrNoPendingStartupInvite
	}

	user.PendingStartupID = nil
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save declined invitation: %w", err)
	}
	return nil
}

func cofounderJoinedNotifications(joined *models.User, founders []models.User) []PushNotification {
	name := strings.TrimSpace(joined.Fullname)
	if name == "" {
		name = "A new cofounder"
	}

	var out []PushNotification
	for _, founder := range founders {
		if founder.ID == joined.ID {
			continue
		}
		out = append(out, PushNotification{
			UserID: founder.ID,
			Title:  "New cofounder",
			Body:   fmt.Sprintf("%s has joined your startup.", name),
		})
	}
	return out
}
