package message

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/makingbetter/serveconnect-backend/internal/auth"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/storage"
	"github.com/makingbetter/serveconnect-backend/internal/user"
)

func newTestService(t *testing.T) (Service, string, string) {
	t.Helper()
	ctx := context.Background()

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	users := user.NewService(user.NewMemoryRepository(), auth.NewBcryptPasswordHasherWithCost(4), files, zap.NewNop())

	client, err := users.Register(ctx, "client@example.com", "s3cret-pass", "Client", user.RoleClient)
	require.NoError(t, err)
	provider, err := users.Register(ctx, "pro@example.com", "s3cret-pass", "Pro", user.RoleProvider)
	require.NoError(t, err)

	return NewService(NewMemoryRepository(), users), client.ID, provider.ID
}

func TestSendAndConversation(t *testing.T) {
	ctx := context.Background()
	svc, clientID, providerID := newTestService(t)

	_, err := svc.Send(ctx, clientID, providerID, "Is Thursday still open?")
	require.NoError(t, err)
	_, err = svc.Send(ctx, providerID, clientID, "Yes, 9 AM works.")
	require.NoError(t, err)

	// Both directions are part of the same conversation.
	msgs, total, err := svc.Conversation(ctx, clientID, providerID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, msgs, 2)

	// A third party sees nothing.
	msgs, total, err = svc.Conversation(ctx, "other", providerID, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, msgs)
}

func TestSendGuards(t *testing.T) {
	ctx := context.Background()
	svc, clientID, providerID := newTestService(t)

	_, err := svc.Send(ctx, clientID, providerID, "   ")
	assert.ErrorIs(t, err, ErrBodyRequired)

	_, err = svc.Send(ctx, clientID, clientID, "hello me")
	assert.ErrorIs(t, err, ErrSelfMessage)

	_, err = svc.Send(ctx, clientID, "ghost", "anyone there?")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestInboxAndMarkRead(t *testing.T) {
	ctx := context.Background()
	svc, clientID, providerID := newTestService(t)

	m, err := svc.Send(ctx, clientID, providerID, "Is Thursday still open?")
	require.NoError(t, err)

	msgs, total, err := svc.Inbox(ctx, providerID, true, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, msgs, 1)
	assert.Nil(t, msgs[0].ReadAt)

	// Only the recipient may mark a message read.
	err = svc.MarkRead(ctx, clientID, m.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.MarkRead(ctx, providerID, m.ID))

	_, total, err = svc.Inbox(ctx, providerID, true, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total, "read messages leave the unread view")

	// Marking again is a no-op.
	assert.NoError(t, svc.MarkRead(ctx, providerID, m.ID))
}
