package gateway

import "sync"

// Credentials are the bearer token and user id issued by a successful login.
// Both fields are set or the value means "not authenticated".
type Credentials struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Valid reports whether both the token and the user id are present.
func (c Credentials) Valid() bool {
	return c.Token != "" && c.UserID != ""
}

// CredentialCache holds the credentials of one Client. It has two states,
// unauthenticated (empty) and authenticated. Safe for concurrent use.
type CredentialCache struct {
	mu    sync.RWMutex
	creds Credentials
}

// NewCredentialCache returns an empty cache.
func NewCredentialCache() *CredentialCache {
	return &CredentialCache{}
}

// Get returns the cached credentials and whether they are usable.
func (c *CredentialCache) Get() (Credentials, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds, c.creds.Valid()
}

// Set replaces the cached credentials unconditionally. Setting incomplete
// credentials leaves the cache unauthenticated.
func (c *CredentialCache) Set(creds Credentials) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !creds.Valid() {
		c.creds = Credentials{}
		return
	}
	c.creds = creds
}

// Clear drops the cached credentials. Clearing an empty cache is a no-op.
func (c *CredentialCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = Credentials{}
}

// ClearToken drops the cached credentials only while they still carry token,
// and reports whether it did. A rejection of an older token leaves newer
// credentials in place.
func (c *CredentialCache) ClearToken(token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == "" || c.creds.Token != token {
		return false
	}
	c.creds = Credentials{}
	return true
}
