package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
	"github.com/kengraphic/tujengane-sacco/internal/events"
	"github.com/kengraphic/tujengane-sacco/internal/validation"
	"github.com/kengraphic/tujengane-sacco/pkg/auth"
)

// AvatarUpload is the raw file from the sign-up form.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type AuthDeps struct {
	Users    UserStore
	Profiles ProfileStore
	Roles    RoleStore
	Avatars  AvatarStore
	Verify   VerificationStore
	Revoke   RevocationStore
	Pub      Publisher

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthSvc struct {
	d AuthDeps
}

func NewAuthSvc(d AuthDeps) *AuthSvc { return &AuthSvc{d: d} }

// Register creates the identity and its pending profile. Avatar upload
// failure is deliberately non-fatal: the profile is created with no avatar
// reference rather than aborting sign-up.
func (s *AuthSvc) Register(ctx context.Context, in validation.SignUp, avatar *AvatarUpload) (*domain.Profile, error) {
	in, err := validation.ValidateSignUp(in)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Email: in.Email, PasswordHash: string(hash)}
	if err := s.d.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	var avatarURL *string
	if avatar != nil {
		key := fmt.Sprintf("%s/%d%s", u.ID, time.Now().UnixMilli(), strings.ToLower(filepath.Ext(avatar.Filename)))
		if err := s.d.Avatars.Upload(ctx, key, avatar.Data, avatar.ContentType); err != nil {
			log.Printf("[auth] avatar upload failed for %s, continuing without avatar: %v", u.ID, err)
		} else {
			url := s.d.Avatars.PublicURL(key)
			avatarURL = &url
		}
	}

	p := &domain.Profile{
		UserID:      u.ID,
		FullName:    in.FullName,
		PhoneNumber: in.Phone,
		Email:       in.Email,
		AvatarURL:   avatarURL,
		Status:      domain.StatusPending,
	}
	if err := s.d.Profiles.Create(ctx, p); err != nil {
		return nil, err
	}

	token := uuid.NewString()
	if err := s.d.Verify.Put(ctx, token, u.ID); err != nil {
		log.Printf("[auth] store verify token for %s: %v", u.ID, err)
	}
	_ = s.d.Pub.PublishJSON(ctx, events.RKMemberRegistered, events.MemberRegistered{
		UserID:      u.ID,
		Email:       u.Email,
		FullName:    p.FullName,
		VerifyToken: token,
	})

	return p, nil
}

// Login checks credentials and mints the token pair. The role claim is
// resolved from the grants table at sign-in time.
func (s *AuthSvc) Login(ctx context.Context, in validation.SignIn) (*domain.User, string, string, error) {
	in, err := validation.ValidateSignIn(in)
	if err != nil {
		return nil, "", "", err
	}

	u, err := s.d.Users.ByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", "", domain.ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, "", "", domain.ErrInvalidCredentials
	}
	if !u.Verified {
		return nil, "", "", domain.ErrNotVerified
	}

	role, err := s.roleFor(ctx, u.ID)
	if err != nil {
		return nil, "", "", err
	}

	access, refresh, err := auth.NewTokenPair(s.d.JWTSecret, u.ID, role, u.Email, s.d.AccessTTL, s.d.RefreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// Refresh exchanges a live refresh token for a new pair. The redeemed token
// is retired, so each refresh token works once.
func (s *AuthSvc) Refresh(ctx context.Context, token string) (string, string, error) {
	claims, err := auth.ParseValidate(s.d.JWTSecret, token)
	if err != nil || claims.Use != auth.UseRefresh {
		return "", "", domain.ErrInvalidCredentials
	}
	if gone, err := s.d.Revoke.IsRevoked(ctx, claims.ID); err != nil {
		return "", "", err
	} else if gone {
		return "", "", domain.ErrInvalidCredentials
	}

	// re-resolve the role: a grant may have landed since the pair was minted
	role, err := s.roleFor(ctx, claims.Sub)
	if err != nil {
		return "", "", err
	}

	expiry := time.Now().Add(s.d.RefreshTTL)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	if err := s.d.Revoke.MarkRevoked(ctx, claims.ID, expiry); err != nil {
		return "", "", err
	}
	return auth.NewTokenPair(s.d.JWTSecret, claims.Sub, role, claims.Email, s.d.AccessTTL, s.d.RefreshTTL)
}

// Verify redeems a one-shot verification token.
func (s *AuthSvc) Verify(ctx context.Context, token string) error {
	userID, err := s.d.Verify.Take(ctx, token)
	if err != nil {
		return err
	}
	return s.d.Users.MarkVerified(ctx, userID)
}

// Logout revokes the presented access token and its paired refresh token, so
// neither half survives sign-out.
func (s *AuthSvc) Logout(ctx context.Context, sess domain.Session) error {
	if err := s.d.Revoke.MarkRevoked(ctx, sess.TokenID, sess.ExpiresAt); err != nil {
		return err
	}
	if sess.RefreshID == "" {
		return nil
	}
	// the access claims carry the refresh ID but not its expiry; the
	// configured TTL is an upper bound on how long it could still live
	return s.d.Revoke.MarkRevoked(ctx, sess.RefreshID, time.Now().Add(s.d.RefreshTTL))
}

func (s *AuthSvc) roleFor(ctx context.Context, userID string) (string, error) {
	if ok, err := s.d.Roles.Has(ctx, userID, domain.RoleAdmin); err != nil {
		return "", err
	} else if ok {
		return string(domain.RoleAdmin), nil
	}
	if ok, err := s.d.Roles.Has(ctx, userID, domain.RoleMember); err != nil {
		return "", err
	} else if ok {
		return string(domain.RoleMember), nil
	}
	// no grant yet: application still pending or rejected
	return "applicant", nil
}
