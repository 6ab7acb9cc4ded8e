package service

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/wardlink/hospital-system/internal/core/domain"
)

// stubUserRepo is an in-memory ports.UserRepository that counts queries so
// tests can assert read-through behaviour.
type stubUserRepo struct {
	users   map[string]*domain.User // by id
	queries int                     // single-record lookups
	finds   int                     // filtered listings
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.queries++
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.queries++
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Find(_ context.Context, filter domain.UserFilter) ([]domain.User, error) {
	r.finds++
	var out []domain.User
	for _, u := range r.users {
		if filter.HospitalID != "" && u.HospitalID != filter.HospitalID {
			continue
		}
		if filter.ExcludeHospitalID != "" && u.HospitalID == filter.ExcludeHospitalID {
			continue
		}
		out = append(out, *cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return u, nil
}

type stubWardRepo struct {
	wards map[string]*domain.Ward
}

func newStubWardRepo(wards ...*domain.Ward) *stubWardRepo {
	r := &stubWardRepo{wards: make(map[string]*domain.Ward)}
	for _, w := range wards {
		r.wards[w.ID] = w
	}
	return r
}

func (r *stubWardRepo) Create(_ context.Context, ward *domain.Ward) (*domain.Ward, error) {
	r.wards[ward.ID] = ward
	return ward, nil
}

func (r *stubWardRepo) FindAll(_ context.Context) ([]domain.Ward, error) {
	var out []domain.Ward
	for _, w := range r.wards {
		out = append(out, *w)
	}
	return out, nil
}

func (r *stubWardRepo) FindByID(_ context.Context, id string) (*domain.Ward, error) {
	if w, ok := r.wards[id]; ok {
		return w, nil
	}
	return nil, domain.ErrWardNotFound
}

func (r *stubWardRepo) Update(_ context.Context, ward *domain.Ward) (*domain.Ward, error) {
	if _, ok := r.wards[ward.ID]; !ok {
		return nil, domain.ErrWardNotFound
	}
	r.wards[ward.ID] = ward
	return ward, nil
}

func (r *stubWardRepo) Delete(_ context.Context, id string) (*domain.Ward, error) {
	w, ok := r.wards[id]
	if !ok {
		return nil, domain.ErrWardNotFound
	}
	delete(r.wards, id)
	return w, nil
}

// memCache is a TTL-ignoring in-memory ports.Cache.
type memCache struct {
	entries map[string]string
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]string)}
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *memCache) has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// stubImages records uploads and deletions; failDelete makes Delete report
// a store failure.
type stubImages struct {
	uploads    int
	deleted    []string
	failUpload bool
	failDelete bool
}

func (s *stubImages) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	if s.failUpload {
		return "", domain.ErrImageUpload
	}
	s.uploads++
	return "images/" + filename, nil
}

func (s *stubImages) Delete(_ context.Context, filename string) error {
	if s.failDelete {
		return domain.ErrImageDelete
	}
	s.deleted = append(s.deleted, filename)
	return nil
}

func (s *stubImages) ResolveURL(path string) string {
	return "http://images.local/" + path
}
