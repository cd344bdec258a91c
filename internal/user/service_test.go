package user

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/makingbetter/serveconnect-backend/internal/auth"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/storage"
)

func newTestService(t *testing.T) (Service, storage.Storage) {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	// Minimal bcrypt cost keeps the tests fast.
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	return NewService(NewMemoryRepository(), hasher, files, zap.NewNop()), files
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	u, err := svc.Register(ctx, "  Jane@Example.COM ", "s3cret-pass", "Jane Doe", RoleClient)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email, "email is normalized")
	assert.Equal(t, RoleClient, u.Role)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)

	got, err := svc.Login(ctx, "jane@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Login(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Register(ctx, " ", "s3cret-pass", "X", RoleClient)
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, "a@b.com", "short", "X", RoleClient)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(ctx, "a@b.com", "s3cret-pass", "X", RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidRole, "admin accounts cannot be self-registered")

	// Empty role defaults to client.
	u, err := svc.Register(ctx, "a@b.com", "s3cret-pass", "X", "")
	require.NoError(t, err)
	assert.Equal(t, RoleClient, u.Role)

	_, err = svc.Register(ctx, "A@B.com", "s3cret-pass", "Y", RoleClient)
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	u, err := svc.Register(ctx, "jane@example.com", "s3cret-pass", "Jane Doe", RoleProvider)
	require.NoError(t, err)

	phone := "555-0100"
	bio := "Certified detailer."
	got, err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{Phone: &phone, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", got.Phone)
	assert.Equal(t, "Certified detailer.", got.Bio)
	assert.Equal(t, "Jane Doe", got.Name, "fields not sent stay unchanged")

	_, err = svc.UpdateProfile(ctx, "missing", ProfileUpdate{Phone: &phone})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUploadProfileImage(t *testing.T) {
	ctx := context.Background()
	svc, files := newTestService(t)

	u, err := svc.Register(ctx, "jane@example.com", "s3cret-pass", "Jane Doe", RoleClient)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 800, 600))))

	got, err := svc.UploadProfileImage(ctx, u.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, "profiles/"+u.ID+".jpg", got.ProfileImage)

	// The normalized file is retrievable from storage.
	rc, err := files.Get(ctx, got.ProfileImage)
	require.NoError(t, err)
	rc.Close()

	_, err = svc.UploadProfileImage(ctx, u.ID, strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, ErrNotAnImage)
}
