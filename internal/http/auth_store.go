package httpapi

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"sync"
)

// AdminUser is one entry of the static credential table.
type AdminUser struct {
	Username     string
	PasswordHash string
}

// AuthStore is the in-memory admin credential table.
// Hashing rule: passwordHash = sha256(lower(username) + ":" + password)
type AuthStore struct {
	mu    sync.RWMutex
	users map[string]AdminUser
}

func NewAuthStore(users map[string]string) *AuthStore {
	s := &AuthStore{users: map[string]AdminUser{}}
	for name, pass := range users {
		s.UpsertUser(name, pass)
	}
	return s
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func normalizeUsername(username string) string {
	return strings.TrimSpace(strings.ToLower(username))
}

func HashUserPassword(username, password string) string {
	return sha256Hex(normalizeUsername(username) + ":" + password)
}

func (s *AuthStore) UpsertUser(username, password string) AdminUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := AdminUser{
		Username:     normalizeUsername(username),
		PasswordHash: HashUserPassword(username, password),
	}
	s.users[u.Username] = u
	return u
}

// Verify reports whether username/password match a configured admin.
func (s *AuthStore) Verify(username, password string) (AdminUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[normalizeUsername(username)]
	if !ok {
		return AdminUser{}, false
	}
	want := HashUserPassword(username, password)
	if subtle.ConstantTimeCompare([]byte(u.PasswordHash), []byte(want)) != 1 {
		return AdminUser{}, false
	}
	return u, true
}

func (s *AuthStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
