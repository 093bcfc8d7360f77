// Package main implements a mock marketplace API server for local development.
// It serves the buyer auction listing from a JSON fixture behind the login
// endpoint so auction-monitor can run without real marketplace credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

// buyerAuctions mirrors the listing envelope; items stay raw so the fixture
// is served unchanged.
type buyerAuctions struct {
	Items []json.RawMessage `json:"items"`
	Page  int               `json:"page"`
	Total int               `json:"total"`
}

type loginRequest struct {
	Password string `json:"password"`
}

// marketplace issues numbered tokens and tracks how many data calls each
// may still make. A zero tokenUses means tokens never expire.
type marketplace struct {
	email     string
	password  string
	tokenUses int
	fixture   *buyerAuctions
	logger    *slog.Logger

	mu     sync.Mutex
	seq    int
	tokens map[string]int
}

func newMarketplace(email, password string, tokenUses int, fixture *buyerAuctions, logger *slog.Logger) *marketplace {
	return &marketplace{
		email:     email,
		password:  password,
		tokenUses: tokenUses,
		fixture:   fixture,
		logger:    logger,
		tokens:    make(map[string]int),
	}
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/buyer_auctions.json", "path to buyer auction fixture")
	email := flag.String("email", "buyer@example.com", "accepted login identity")
	password := flag.String("password", "password", "accepted login password")
	tokenUses := flag.Int("token-uses", 0, "data calls allowed per token before it is rejected with 401 (0 = unlimited)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "items", len(fixture.Items))

	m := newMarketplace(*email, *password, *tokenUses, fixture, logger)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock marketplace server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, m.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func (m *marketplace) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /v1/authentication/{identity}", m.loginHandler)
	mux.HandleFunc("GET /v2/auction/buyer/", m.buyerAuctionsHandler)
	return mux
}

func loadFixture(path string) (*buyerAuctions, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp buyerAuctions
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func (m *marketplace) loginHandler(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed login body"})
		return
	}

	if identity != m.email || req.Password != m.password {
		m.logger.Warn("login rejected", "identity", identity)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
		return
	}

	m.mu.Lock()
	m.seq++
	seq := m.seq
	token := "mock-token-" + strconv.Itoa(seq)
	m.tokens[token] = m.tokenUses
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"token":  token,
		"userId": identity,
	})
	m.logger.Info("issued mock token", "identity", identity, "seq", seq)
}

// useToken reports whether token is valid for userID and consumes one use.
func (m *marketplace) useToken(token, userID string) bool {
	if userID != m.email {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	remaining, ok := m.tokens[token]
	if !ok {
		return false
	}
	if m.tokenUses == 0 {
		return true
	}
	if remaining <= 0 {
		delete(m.tokens, token)
		return false
	}
	m.tokens[token] = remaining - 1
	return true
}

func (m *marketplace) buyerAuctionsHandler(w http.ResponseWriter, r *http.Request) {
	if !m.useToken(r.Header.Get("authToken"), r.Header.Get("userid")) {
		m.logger.Warn("rejected data call", "path", r.URL.Path)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid or expired token"})
		return
	}

	resp := buyerAuctions{
		Items: m.fixture.Items,
		Page:  m.fixture.Page,
		Total: len(m.fixture.Items),
	}
	if resp.Page == 0 {
		resp.Page = 1
	}
	if r.URL.Query().Get("count") == "true" {
		resp.Items = []json.RawMessage{}
	}
	if resp.Items == nil {
		resp.Items = []json.RawMessage{}
	}

	writeJSON(w, http.StatusOK, resp)
	m.logger.Info("buyer auctions", "filter", r.URL.Query().Get("filter"), "returned", len(resp.Items))
}
