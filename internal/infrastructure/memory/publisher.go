package memory

import (
	"context"
	"sync"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/application/admin"
)

// NoopPublisher drops every event. Used in dev when the broker is down.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishUserCreated(ctx context.Context, evt admin.UserEvent) error { return nil }
func (NoopPublisher) PublishUserUpdated(ctx context.Context, evt admin.UserEvent) error { return nil }
func (NoopPublisher) PublishRoleCreated(ctx context.Context, evt admin.RoleEvent) error { return nil }
func (NoopPublisher) PublishRoleDeleted(ctx context.Context, evt admin.RoleEvent) error { return nil }

// RecordingPublisher captures events for test assertions.
type RecordingPublisher struct {
	mu sync.Mutex

	UserCreated []admin.UserEvent
	UserUpdated []admin.UserEvent
	RoleCreated []admin.RoleEvent
	RoleDeleted []admin.RoleEvent
}

func NewRecordingPublisher() *RecordingPublisher { return &RecordingPublisher{} }

func (p *RecordingPublisher) PublishUserCreated(ctx context.Context, evt admin.UserEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.UserCreated = append(p.UserCreated, evt)
	return nil
}

func (p *RecordingPublisher) PublishUserUpdated(ctx context.Context, evt admin.UserEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.UserUpdated = append(p.UserUpdated, evt)
	return nil
}

func (p *RecordingPublisher) PublishRoleCreated(ctx context.Context, evt admin.RoleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RoleCreated = append(p.RoleCreated, evt)
	return nil
}

func (p *RecordingPublisher) PublishRoleDeleted(ctx context.Context, evt admin.RoleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RoleDeleted = append(p.RoleDeleted, evt)
	return nil
}
