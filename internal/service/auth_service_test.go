package service

import (
	"context"
	"testing"
	"time"

	"workshop-wizard-be/internal/dto"
	"workshop-wizard-be/internal/pkg/logger"
	"workshop-wizard-be/pkg/events"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test_secret"

func newTestAuthService(db *fakeDB, evts events.Publisher) *authService {
	svc := NewAuthService(db, evts, logger.NewNopLogger(), testJWTSecret, time.Hour).(*authService)
	svc.now = func() time.Time { return time.Now().Truncate(time.Second) }
	return svc
}

func TestAuthService_Register(t *testing.T) {
	db := newFakeDB()
	evts := &recordingEvents{}
	svc := newTestAuthService(db, evts)

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "  Consultant@Example.com ",
		Password: "secret123",
		FullName: "Kim Berger",
		Company:  "Berger Consulting",
	})
	require.NoError(t, err)
	assert.Equal(t, "consultant@example.com", res.User.Email)
	assert.Equal(t, "Berger Consulting", res.User.Company)
	assert.Equal(t, "user", res.User.Role)

	token, err := jwt.Parse(res.Token, func(*jwt.Token) (interface{}, error) { return []byte(testJWTSecret), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, res.User.Id.String(), claims["user_id"])
	assert.Equal(t, float64(res.ExpiresAt.Unix()), claims["exp"])

	assert.Equal(t, []string{events.UserRegistered}, evts.types())

	stored := db.users[res.User.Id]
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestAuthService_RegisterRejectsTakenEmail(t *testing.T) {
	svc := newTestAuthService(newFakeDB(), events.NopPublisher{})
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@example.com", Password: "secret123", FullName: "A"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "A@EXAMPLE.COM", Password: "other123", FullName: "B"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestAuthService(newFakeDB(), events.NopPublisher{})
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@example.com", Password: "secret123", FullName: "A"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: "a@example.com", password: "secret123"},
		{name: "email case", email: "A@Example.com", password: "secret123"},
		{name: "wrong password", email: "a@example.com", password: "secret124", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "b@example.com", password: "secret123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(ctx, &dto.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.User.Id, res.User.Id)
			assert.NotEmpty(t, res.Token)
		})
	}
}

func TestUserService_Profile(t *testing.T) {
	db := newFakeDB()
	registered, err := newTestAuthService(db, events.NopPublisher{}).Register(context.Background(), &dto.RegisterRequest{
		Email: "a@example.com", Password: "secret123", FullName: "A",
	})
	require.NoError(t, err)

	svc := NewUserService(db)

	profile, err := svc.GetProfile(context.Background(), registered.User.Id)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", profile.Email)

	updated, err := svc.UpdateProfile(context.Background(), registered.User.Id, &dto.UpdateProfileRequest{
		FullName: " Alex Muster ",
		Company:  "Muster GmbH",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alex Muster", updated.FullName)
	assert.Equal(t, "Muster GmbH", db.users[registered.User.Id].Company)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
