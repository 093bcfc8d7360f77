package gateway_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/auction-monitor/internal/gateway"
)

func TestCredentialCache(t *testing.T) {
	t.Parallel()

	creds := gateway.Credentials{Token: "tok", UserID: "user-1"}

	tests := []struct {
		name   string
		ops    func(c *gateway.CredentialCache)
		want   gateway.Credentials
		wantOK bool
	}{
		{
			name:   "new cache is empty",
			ops:    func(*gateway.CredentialCache) {},
			wantOK: false,
		},
		{
			name:   "get after set returns value",
			ops:    func(c *gateway.CredentialCache) { c.Set(creds) },
			want:   creds,
			wantOK: true,
		},
		{
			name: "set replaces previous value",
			ops: func(c *gateway.CredentialCache) {
				c.Set(gateway.Credentials{Token: "old", UserID: "old-user"})
				c.Set(creds)
			},
			want:   creds,
			wantOK: true,
		},
		{
			name: "clear after set empties cache",
			ops: func(c *gateway.CredentialCache) {
				c.Set(creds)
				c.Clear()
			},
			wantOK: false,
		},
		{
			name: "clear is idempotent",
			ops: func(c *gateway.CredentialCache) {
				c.Clear()
				c.Set(creds)
				c.Clear()
				c.Clear()
			},
			wantOK: false,
		},
		{
			name: "set after clear restores value",
			ops: func(c *gateway.CredentialCache) {
				c.Set(gateway.Credentials{Token: "old", UserID: "old-user"})
				c.Clear()
				c.Set(creds)
			},
			want:   creds,
			wantOK: true,
		},
		{
			name:   "incomplete credentials are not cached",
			ops:    func(c *gateway.CredentialCache) { c.Set(gateway.Credentials{Token: "tok"}) },
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := gateway.NewCredentialCache()
			tt.ops(c)

			got, ok := c.Get()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredentialCache_ClearToken(t *testing.T) {
	t.Parallel()

	creds := gateway.Credentials{Token: "tok", UserID: "user-1"}

	tests := []struct {
		name        string
		seed        gateway.Credentials
		token       string
		wantCleared bool
		wantOK      bool
	}{
		{name: "matching token clears", seed: creds, token: "tok", wantCleared: true, wantOK: false},
		{name: "different token keeps credentials", seed: creds, token: "old", wantCleared: false, wantOK: true},
		{name: "empty token keeps credentials", seed: creds, token: "", wantCleared: false, wantOK: true},
		{name: "empty cache is a no-op", token: "tok", wantCleared: false, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := gateway.NewCredentialCache()
			c.Set(tt.seed)

			assert.Equal(t, tt.wantCleared, c.ClearToken(tt.token))
			_, ok := c.Get()
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestCredentialCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := gateway.NewCredentialCache()
	creds := gateway.Credentials{Token: "tok", UserID: "user-1"}

	const goroutines = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := range goroutines {
		go func() {
			defer wg.Done()
			switch i % 3 {
			case 0:
				c.Set(creds)
			case 1:
				c.Clear()
			default:
				got, ok := c.Get()
				if ok {
					assert.Equal(t, creds, got)
				} else {
					assert.Equal(t, gateway.Credentials{}, got)
				}
			}
		}()
	}

	wg.Wait()
}
