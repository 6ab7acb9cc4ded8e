package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wardlink/hospital-system/internal/core/domain"
	"github.com/wardlink/hospital-system/internal/core/ports"
)

const (
	// listCacheKey holds the unscoped directory listing (SUPER view). Scoped
	// listings and single records live under "user:<suffix>".
	listCacheKey = "user"

	singleRecordTTL = 24 * time.Hour
	listTTL         = 10 * time.Hour

	// cacheSchemaVersion is bumped whenever the cached shape changes; stale
	// envelopes are then treated as misses instead of decoding garbage.
	cacheSchemaVersion = 1
)

type userService struct {
	repo   ports.UserRepository
	wards  ports.WardRepository
	cache  ports.Cache
	images ports.ImageStore
	log    zerolog.Logger
}

// NewUserService returns the directory service: read-through cached,
// role-filtered reads and cache-invalidating writes over user records.
func NewUserService(
	repo ports.UserRepository,
	wards ports.WardRepository,
	cache ports.Cache,
	images ports.ImageStore,
	log zerolog.Logger,
) ports.UserService {
	return &userService{repo: repo, wards: wards, cache: cache, images: images, log: log}
}

// cacheEnvelope wraps every cached value with an explicit schema version.
type cacheEnvelope struct {
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

// cachedUser is the cache-wire shape of a user record. Unlike the API shape
// it retains the password hash, so credential checks can be served from a
// cache hit without a store read.
type cachedUser struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"password_hash,omitempty"`
	Role         domain.Role `json:"role"`
	Display      string      `json:"display"`
	Pic          string      `json:"pic,omitempty"`
	WardID       string      `json:"ward_id"`
	HospitalID   string      `json:"hospital_id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func toCached(u *domain.User) *cachedUser {
	if u == nil {
		return nil
	}
	return &cachedUser{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Display:      u.Display,
		Pic:          u.Pic,
		WardID:       u.WardID,
		HospitalID:   u.HospitalID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromCached(c *cachedUser) *domain.User {
	if c == nil {
		return nil
	}
	return &domain.User{
		ID:           c.ID,
		Username:     c.Username,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		Display:      c.Display,
		Pic:          c.Pic,
		WardID:       c.WardID,
		HospitalID:   c.HospitalID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func encodeCached(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	env, err := json.Marshal(cacheEnvelope{Version: cacheSchemaVersion, Data: data})
	if err != nil {
		return "", err
	}
	return string(env), nil
}

// decodeCached unmarshals a cached envelope into out. A corrupt entry or a
// version mismatch reports false and is handled as a cache miss.
func decodeCached(raw string, out any) bool {
	var env cacheEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return false
	}
	if env.Version != cacheSchemaVersion {
		return false
	}
	return json.Unmarshal(env.Data, out) == nil
}

func recordCacheKey(suffix string) string {
	return listCacheKey + ":" + suffix
}

// FindByUsername is a read-through lookup keyed on the normalized username.
// Not-found results are cached for the same TTL as hits (see DESIGN.md).
func (s *userService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	username = domain.NormalizeUsername(username)
	return s.findCached(ctx, recordCacheKey(username), func() (*domain.User, error) {
		return s.repo.FindByUsername(ctx, username)
	})
}

// FindByID is a read-through lookup keyed on the user id.
func (s *userService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findCached(ctx, recordCacheKey(id), func() (*domain.User, error) {
		return s.repo.FindByID(ctx, id)
	})
}

func (s *userService) findCached(ctx context.Context, key string, query func() (*domain.User, error)) (*domain.User, error) {
	raw, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	if hit {
		var cached *cachedUser
		if decodeCached(raw, &cached) {
			return fromCached(cached), nil
		}
	}

	user, err := query()
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	payload, err := encodeCached(toCached(user))
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, payload, singleRecordTTL); err != nil {
		return nil, fmt.Errorf("cache set %s: %w", key, err)
	}
	return user, nil
}

// FindAll returns the user listing visible to the caller's role, ordered by
// role ascending. Listings are cached per visibility namespace, but only
// when non-empty.
func (s *userService) FindAll(ctx context.Context, caller domain.Claims) ([]domain.User, error) {
	filter, key, err := ResolveVisibility(caller)
	if err != nil {
		return nil, err
	}

	raw, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	if hit {
		var cached []cachedUser
		if decodeCached(raw, &cached) {
			users := make([]domain.User, len(cached))
			for i := range cached {
				users[i] = *fromCached(&cached[i])
			}
			return users, nil
		}
	}

	users, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}

	if len(users) > 0 {
		entries := make([]cachedUser, len(users))
		for i := range users {
			entries[i] = *toCached(&users[i])
		}
		payload, err := encodeCached(entries)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, payload, listTTL); err != nil {
			return nil, fmt.Errorf("cache set %s: %w", key, err)
		}
	}
	return users, nil
}

// Create persists a new user and purges every cache key that could now be
// stale: the listing plus both single-record keys.
func (s *userService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	ward, err := s.wards.FindByID(ctx, in.WardID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           "UID-" + uuid.NewString(),
		Username:     domain.NormalizeUsername(in.Username),
		PasswordHash: in.PasswordHash,
		Role:         in.Role,
		Display:      in.Display,
		Pic:          in.Pic,
		WardID:       ward.ID,
		HospitalID:   ward.HospitalID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.purgeUserKeys(ctx, created.ID, created.Username); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

// Update applies a partial update. A new image replaces the previous one;
// deleting the old file from the image store is best effort and never fails
// the update.
func (s *userService) Update(ctx context.Context, id string, in ports.UpdateUserInput, image *ports.ImageUpload) (*domain.User, error) {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrUserNotFound
	}

	if image != nil {
		uploaded, err := s.images.Upload(ctx, image.Filename, image.Content)
		if err != nil {
			return nil, err
		}
		if current.Pic != "" {
			if err := s.images.Delete(ctx, picFilename(current.Pic)); err != nil {
				s.log.Warn().Err(err).Str("user_id", id).Msg("previous profile image not deleted")
			}
		}
		pic := s.images.ResolveURL(uploaded)
		in.Pic = &pic
	}

	if in.Display != nil {
		current.Display = *in.Display
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		current.Role = *in.Role
	}
	if in.WardID != nil && *in.WardID != current.WardID {
		ward, err := s.wards.FindByID(ctx, *in.WardID)
		if err != nil {
			return nil, err
		}
		current.WardID = ward.ID
		current.HospitalID = ward.HospitalID
	}
	if in.Pic != nil {
		current.Pic = *in.Pic
	}
	current.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}
	if err := s.purgeUserKeys(ctx, updated.ID, updated.Username); err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdatePassword persists a new hash and purges the username- and id-keyed
// entries (plus the listing). Both single-record keys must go: the directory
// caches the same user under two keys.
func (s *userService) UpdatePassword(ctx context.Context, id, username, passwordHash string) error {
	if err := s.repo.UpdatePassword(ctx, id, passwordHash); err != nil {
		return err
	}
	return s.purgeUserKeys(ctx, id, username)
}

// Remove deletes the user, purges its cache keys, and removes its profile
// image. Unlike Update, a reported image deletion failure propagates.
func (s *userService) Remove(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.purgeUserKeys(ctx, user.ID, user.Username); err != nil {
		return nil, err
	}
	if user.Pic != "" {
		if err := s.images.Delete(ctx, picFilename(user.Pic)); err != nil {
			return nil, err
		}
	}
	s.log.Info().Str("user_id", user.ID).Msg("user removed")
	return user, nil
}

// purgeUserKeys is issued after every store write so a read racing the write
// observes at most a bounded-staleness window.
func (s *userService) purgeUserKeys(ctx context.Context, id, username string) error {
	if err := s.cache.Del(ctx, listCacheKey, recordCacheKey(id), recordCacheKey(username)); err != nil {
		return fmt.Errorf("cache purge for user %s: %w", id, err)
	}
	return nil
}

func picFilename(pic string) string {
	return pic[strings.LastIndexByte(pic, '/')+1:]
}
