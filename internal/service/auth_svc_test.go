package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
	"github.com/kengraphic/tujengane-sacco/internal/events"
	"github.com/kengraphic/tujengane-sacco/internal/validation"
	"github.com/kengraphic/tujengane-sacco/pkg/auth"
)

type authFixture struct {
	users    *fakeUsers
	profiles *fakeProfiles
	roles    *fakeRoles
	avatars  *fakeAvatars
	verify   *fakeVerify
	revoke   *fakeRevoke
	pub      *fakePublisher
	svc      *AuthSvc
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeUsers(),
		profiles: newFakeProfiles(),
		roles:    newFakeRoles(),
		avatars:  newFakeAvatars(),
		verify:   newFakeVerify(),
		revoke:   newFakeRevoke(),
		pub:      &fakePublisher{},
	}
	f.svc = NewAuthSvc(AuthDeps{
		Users:      f.users,
		Profiles:   f.profiles,
		Roles:      f.roles,
		Avatars:    f.avatars,
		Verify:     f.verify,
		Revoke:     f.revoke,
		Pub:        f.pub,
		JWTSecret:  "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
	return f
}

func validSignUp() validation.SignUp {
	return validation.SignUp{
		FullName: "Amina Wanjiru",
		Email:    "amina@example.com",
		Phone:    "0700123456",
		Password: "hunter22",
	}
}

func TestRegisterCreatesPendingProfileWithAvatar(t *testing.T) {
	f := newAuthFixture()

	avatar := &AvatarUpload{
		Filename:    "me.png",
		ContentType: "image/png",
		Data:        bytes.Repeat([]byte{0xAB}, 2<<20), // 2MB
	}
	p, err := f.svc.Register(context.Background(), validSignUp(), avatar)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, p.Status)
	require.NotNil(t, p.AvatarURL)
	assert.Contains(t, *p.AvatarURL, p.UserID+"/")
	assert.Contains(t, *p.AvatarURL, ".png")
	assert.Len(t, f.avatars.uploaded, 1)

	// verification token stored and carried on the event
	require.Len(t, f.pub.events, 1)
	assert.Equal(t, events.RKMemberRegistered, f.pub.events[0].Key)
	ev := f.pub.events[0].Payload.(events.MemberRegistered)
	assert.Equal(t, p.UserID, f.verify.tokens[ev.VerifyToken])
}

func TestRegisterAvatarFailureIsNonFatal(t *testing.T) {
	f := newAuthFixture()
	f.avatars.uploadErr = assert.AnError

	avatar := &AvatarUpload{Filename: "me.jpg", ContentType: "image/jpeg", Data: []byte("broken")}
	p, err := f.svc.Register(context.Background(), validSignUp(), avatar)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, p.Status)
	assert.Nil(t, p.AvatarURL)
}

func TestRegisterWithoutAvatar(t *testing.T) {
	f := newAuthFixture()

	p, err := f.svc.Register(context.Background(), validSignUp(), nil)
	require.NoError(t, err)
	assert.Nil(t, p.AvatarURL)
	assert.Empty(t, f.avatars.uploaded)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), validSignUp(), nil)
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), validSignUp(), nil)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	f := newAuthFixture()

	in := validSignUp()
	in.Phone = "0812345678" // wrong second digit

	_, err := f.svc.Register(context.Background(), in, nil)
	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 1)
	assert.Contains(t, verr.Fields, "phone")
	assert.Empty(t, f.users.byEmail, "no identity should be created on bad input")
}

func seedUser(t *testing.T, f *authFixture, email, password string, verified bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{Email: email, PasswordHash: string(hash), Verified: verified}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func TestLoginHappyPath(t *testing.T) {
	f := newAuthFixture()
	u := seedUser(t, f, "amina@example.com", "hunter22", true)
	require.NoError(t, f.roles.Grant(context.Background(), u.ID, domain.RoleMember))

	got, access, refresh, err := f.svc.Login(context.Background(), validation.SignIn{
		Email: "Amina@Example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	require.NotEmpty(t, refresh)

	claims, err := auth.ParseValidate("test-secret", access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Sub)
	assert.Equal(t, "member", claims.Role)
	assert.NotEmpty(t, claims.ID, "token needs an ID for revocation")
}

func TestLoginFailures(t *testing.T) {
	f := newAuthFixture()
	seedUser(t, f, "amina@example.com", "hunter22", true)
	seedUser(t, f, "pending@example.com", "hunter22", false)

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"unknown email", "nobody@example.com", "hunter22", domain.ErrInvalidCredentials},
		{"wrong password", "amina@example.com", "wrong-pass", domain.ErrInvalidCredentials},
		{"not verified", "pending@example.com", "hunter22", domain.ErrNotVerified},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := f.svc.Login(context.Background(), validation.SignIn{Email: tc.email, Password: tc.password})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestVerifyIsOneShot(t *testing.T) {
	f := newAuthFixture()
	u := seedUser(t, f, "amina@example.com", "hunter22", false)
	require.NoError(t, f.verify.Put(context.Background(), "tok-1", u.ID))

	require.NoError(t, f.svc.Verify(context.Background(), "tok-1"))
	assert.True(t, u.Verified)

	err := f.svc.Verify(context.Background(), "tok-1")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestLogoutRevokesBothTokens(t *testing.T) {
	f := newAuthFixture()
	u := seedUser(t, f, "amina@example.com", "hunter22", true)
	require.NoError(t, f.roles.Grant(context.Background(), u.ID, domain.RoleMember))

	_, access, refresh, err := f.svc.Login(context.Background(), validation.SignIn{
		Email: "amina@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	claims, err := auth.ParseValidate("test-secret", access)
	require.NoError(t, err)
	require.NotEmpty(t, claims.RefreshID)

	sess := domain.Session{
		UserID:    u.ID,
		TokenID:   claims.ID,
		RefreshID: claims.RefreshID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	require.NoError(t, f.svc.Logout(context.Background(), sess))

	for _, id := range []string{claims.ID, claims.RefreshID} {
		gone, err := f.revoke.IsRevoked(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, gone, "token %s must be revoked after sign-out", id)
	}

	// the surviving refresh token string is now dead too
	_, _, err = f.svc.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshRotatesPair(t *testing.T) {
	f := newAuthFixture()
	u := seedUser(t, f, "amina@example.com", "hunter22", true)
	require.NoError(t, f.roles.Grant(context.Background(), u.ID, domain.RoleMember))

	_, access, refresh, err := f.svc.Login(context.Background(), validation.SignIn{
		Email: "amina@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	newAccess, newRefresh, err := f.svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEmpty(t, newRefresh)

	claims, err := auth.ParseValidate("test-secret", newAccess)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Sub)
	assert.Equal(t, "member", claims.Role)

	// redeemed refresh token cannot be replayed
	_, _, err = f.svc.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// an access token buys nothing at the refresh endpoint
	_, _, err = f.svc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
