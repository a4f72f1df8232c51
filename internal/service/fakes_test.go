package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
)

// --- Fakes ---

type fakeUsers struct {
	byEmail   map[string]*domain.User
	createErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*domain.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrEmailTaken
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) ByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) MarkVerified(_ context.Context, id string) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.Verified = true
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type fakeProfiles struct {
	byID      map[string]*domain.Profile
	createErr error
	updateErr error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: map[string]*domain.Profile{}}
}

func (f *fakeProfiles) Create(_ context.Context, p *domain.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, ex := range f.byID {
		if ex.UserID == p.UserID {
			return domain.ErrDuplicateProfile
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProfiles) ByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) ByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	for _, p := range f.byID {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (f *fakeProfiles) ListByStatus(_ context.Context, status domain.ProfileStatus) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range f.byID {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProfiles) ListAll(_ context.Context) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range f.byID {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProfiles) UpdateStatus(_ context.Context, id string, to domain.ProfileStatus) (*domain.Profile, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p.Status = to
	return p, nil
}

type fakeRoles struct {
	grants     map[string]map[domain.Role]bool
	grantErr   error
	grantCalls int
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{grants: map[string]map[domain.Role]bool{}}
}

func (f *fakeRoles) Grant(_ context.Context, userID string, role domain.Role) error {
	f.grantCalls++
	if f.grantErr != nil {
		return f.grantErr
	}
	if f.grants[userID] == nil {
		f.grants[userID] = map[domain.Role]bool{}
	}
	f.grants[userID][role] = true
	return nil
}

func (f *fakeRoles) Has(_ context.Context, userID string, role domain.Role) (bool, error) {
	return f.grants[userID][role], nil
}

type fakeContributions struct {
	list      []domain.Contribution
	createErr error
}

func (f *fakeContributions) Create(_ context.Context, c *domain.Contribution) error {
	if f.createErr != nil {
		return f.createErr
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	f.list = append([]domain.Contribution{*c}, f.list...)
	return nil
}

func (f *fakeContributions) ListByUser(_ context.Context, userID string) ([]domain.Contribution, error) {
	var out []domain.Contribution
	for _, c := range f.list {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeAvatars struct {
	uploadErr error
	uploaded  map[string][]byte
}

func newFakeAvatars() *fakeAvatars {
	return &fakeAvatars{uploaded: map[string][]byte{}}
}

func (f *fakeAvatars) Upload(_ context.Context, key string, data []byte, _ string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploaded[key] = data
	return nil
}

func (f *fakeAvatars) PublicURL(key string) string {
	return "https://cdn.test/avatars/" + key
}

type published struct {
	Key     string
	Payload any
}

type fakePublisher struct {
	events []published
}

func (f *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	f.events = append(f.events, published{Key: key, Payload: v})
	return nil
}

func (f *fakePublisher) keys() []string {
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Key)
	}
	return out
}

type fakeVerify struct {
	tokens map[string]string
	putErr error
}

func newFakeVerify() *fakeVerify {
	return &fakeVerify{tokens: map[string]string{}}
}

func (f *fakeVerify) Put(_ context.Context, token, userID string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.tokens[token] = userID
	return nil
}

func (f *fakeVerify) Take(_ context.Context, token string) (string, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return "", domain.ErrTokenNotFound
	}
	delete(f.tokens, token)
	return userID, nil
}

type fakeRevoke struct {
	revoked map[string]time.Time
}

func newFakeRevoke() *fakeRevoke {
	return &fakeRevoke{revoked: map[string]time.Time{}}
}

func (f *fakeRevoke) MarkRevoked(_ context.Context, tokenID string, expiresAt time.Time) error {
	f.revoked[tokenID] = expiresAt
	return nil
}

func (f *fakeRevoke) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := f.revoked[tokenID]
	return ok, nil
}
