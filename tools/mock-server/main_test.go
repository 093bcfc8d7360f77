package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/donaldgifford/auction-monitor/internal/gateway"
	mpclient "github.com/donaldgifford/auction-monitor/internal/marketplace"
	"github.com/donaldgifford/auction-monitor/pkg/stats"
)

const (
	testEmail    = "buyer@example.com"
	testPassword = "password"
)

func loadTestFixture(t *testing.T) *buyerAuctions {
	t.Helper()
	fixture, err := loadFixture(filepath.Join("testdata", "buyer_auctions.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return fixture
}

func newTestMarketplace(t *testing.T, tokenUses int) *marketplace {
	t.Helper()
	return newMarketplace(testEmail, testPassword, tokenUses, loadTestFixture(t), testLogger())
}

func login(t *testing.T, h http.Handler, identity, password string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"password":"` + password + `"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/authentication/"+identity, body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func fetchAuctions(h http.Handler, token, userID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v2/auction/buyer/"+query, http.NoBody)
	req.Header.Set("authToken", token)
	req.Header.Set("userid", userID)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestLoadFixture(t *testing.T) {
	fixture := loadTestFixture(t)
	if len(fixture.Items) == 0 {
		t.Fatal("expected items in fixture")
	}
	if fixture.Total != len(fixture.Items) {
		t.Errorf("total=%d, want %d", fixture.Total, len(fixture.Items))
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := loadFixture(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		identity   string
		password   string
		wantStatus int
	}{
		{name: "valid credentials", identity: testEmail, password: testPassword, wantStatus: http.StatusOK},
		{name: "wrong password", identity: testEmail, password: "nope", wantStatus: http.StatusUnauthorized},
		{name: "unknown identity", identity: "other@example.com", password: testPassword, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestMarketplace(t, 0).routes()
			w := login(t, h, tt.identity, tt.password)

			if w.Code != tt.wantStatus {
				t.Fatalf("status=%d, want %d", w.Code, tt.wantStatus)
			}

			var resp map[string]string
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if tt.wantStatus != http.StatusOK {
				if resp["message"] != "invalid credentials" {
					t.Errorf("message=%q, want invalid credentials", resp["message"])
				}
				return
			}
			if resp["token"] != "mock-token-1" {
				t.Errorf("token=%q, want mock-token-1", resp["token"])
			}
			if resp["userId"] != testEmail {
				t.Errorf("userId=%q, want %s", resp["userId"], testEmail)
			}
		})
	}
}

func TestLoginHandler_MalformedBody(t *testing.T) {
	h := newTestMarketplace(t, 0).routes()
	req := httptest.NewRequest(http.MethodPut, "/v1/authentication/"+testEmail, strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestBuyerAuctionsHandler(t *testing.T) {
	h := newTestMarketplace(t, 0).routes()

	var creds map[string]string
	if err := json.NewDecoder(login(t, h, testEmail, testPassword).Body).Decode(&creds); err != nil {
		t.Fatalf("decoding login: %v", err)
	}

	w := fetchAuctions(h, creds["token"], creds["userId"], `?filter=%22%22&count=false`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp buyerAuctions
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Errorf("items=%d, want 3", len(resp.Items))
	}
	if resp.Page != 1 {
		t.Errorf("page=%d, want 1", resp.Page)
	}
}

func TestBuyerAuctionsHandler_CountOnly(t *testing.T) {
	h := newTestMarketplace(t, 0).routes()
	login(t, h, testEmail, testPassword)

	w := fetchAuctions(h, "mock-token-1", testEmail, "?count=true")
	var resp buyerAuctions
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Items) != 0 || resp.Total != 3 {
		t.Errorf("items=%d total=%d, want 0 and 3", len(resp.Items), resp.Total)
	}
}

func TestBuyerAuctionsHandler_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		userID string
	}{
		{name: "missing token", token: "", userID: testEmail},
		{name: "unknown token", token: "forged", userID: testEmail},
		{name: "wrong user", token: "mock-token-1", userID: "other@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestMarketplace(t, 0).routes()
			login(t, h, testEmail, testPassword)

			w := fetchAuctions(h, tt.token, tt.userID, "")
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestBuyerAuctionsHandler_TokenExpiresAfterUses(t *testing.T) {
	h := newTestMarketplace(t, 2).routes()
	login(t, h, testEmail, testPassword)

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusUnauthorized, http.StatusUnauthorized} {
		if w := fetchAuctions(h, "mock-token-1", testEmail, ""); w.Code != want {
			t.Fatalf("call %d: status=%d, want %d", i+1, w.Code, want)
		}
	}
}

// TestGatewayAgainstMock drives the real gateway through a token expiry:
// the rejected call fails with 401 and the next call logs in again.
func TestGatewayAgainstMock(t *testing.T) {
	m := newTestMarketplace(t, 1)
	srv := httptest.NewServer(m.routes())
	defer srv.Close()

	gw := gateway.New(srv.URL, testEmail, testPassword)
	mc := mpclient.New(gw, srv.URL)
	ctx := context.Background()

	listing, err := mc.RunningAuctions(ctx)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	s := stats.Summarize(listing.Items, time.Now())
	if s.AuctionCount != 3 || s.AverageBids != 4 {
		t.Errorf("summary=%+v, want 3 auctions averaging 4 bids", s)
	}

	_, err = mc.RunningAuctions(ctx)
	if !errors.Is(err, gateway.ErrUnauthorized) {
		t.Fatalf("second call: err=%v, want unauthorized", err)
	}
	if _, ok := gw.Cache().Get(); ok {
		t.Fatal("expected credentials to be cleared after 401")
	}

	if _, err := mc.RunningAuctions(ctx); err != nil {
		t.Fatalf("third call: %v", err)
	}
	creds, ok := gw.Cache().Get()
	if !ok || creds.Token != "mock-token-2" {
		t.Errorf("creds=%+v, want mock-token-2", creds)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
