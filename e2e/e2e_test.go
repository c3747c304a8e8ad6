//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
	"pantry-app-go/internal/app"
	"pantry-app-go/internal/config"
	"pantry-app-go/internal/db"
	"pantry-app-go/internal/repository/inmemory"
	"pantry-app-go/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	cfg := config.Config{
		DB:     config.DBConfig{Driver: db.DriverPostgres, DSN: dsn},
		Groups: config.GroupsConfig{AdminsManageMembers: true},
		Argon2: config.Argon2Config{MemoryKB: 1024, Iterations: 1, Parallelism: 1},
	}
	log := logger.NewNop()

	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(context.Background(), dbConn, cfg.DB.Driver); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	router := app.NewRouter(cfg, dbConn, inmemory.NewGroupListCache(), log)
	server := httptest.NewServer(router)

	return &testEnv{server: server, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE action_logs, items, invites, group_members, groups, recipes, sessions, users CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

type userResponse struct {
	ID string `json:"id"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

type groupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type memberResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type inviteResponse struct {
	Code string `json:"code"`
}

func signUp(t *testing.T, client *http.Client, baseURL, name string) (string, string) {
	t.Helper()

	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/users", "", map[string]string{
		"name": name, "email": name + "@example.com", "password": "correct-horse",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var created userResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode user: %v", err)
	}

	resp, body = requestJSON(t, client, http.MethodPost, baseURL+"/sessions", "", map[string]string{
		"email": name + "@example.com", "password": "correct-horse",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	return created.ID, session.Token
}

func TestE2EOwnershipTransfer(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	base := env.server.URL + "/api"

	aliceID, aliceToken := signUp(t, client, base, "alice")
	bobID, bobToken := signUp(t, client, base, "bob")

	resp, body := requestJSON(t, client, http.MethodPost, base+"/groups", aliceToken, map[string]string{"name": "Pantry"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var group groupResponse
	if err := json.Unmarshal(body, &group); err != nil {
		t.Fatalf("decode group: %v", err)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/groups/"+group.ID+"/members", aliceToken, map[string]string{
		"user_id": bobID, "role": "admin",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPatch, base+"/groups/"+group.ID+"/members/"+bobID, aliceToken, map[string]string{"role": "owner"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/groups/"+group.ID+"/members", bobToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var members []memberResponse
	if err := json.Unmarshal(body, &members); err != nil {
		t.Fatalf("decode members: %v", err)
	}
	owners := 0
	for _, member := range members {
		if member.Role == "owner" {
			owners++
			if member.UserID != bobID {
				t.Fatalf("expected bob to own the group, got %s", member.UserID)
			}
		}
		if member.UserID == aliceID && member.Role != "member" {
			t.Fatalf("expected alice demoted to member, got %s", member.Role)
		}
	}
	if owners != 1 {
		t.Fatalf("expected exactly one owner, got %d", owners)
	}
}

func TestE2EConcurrentInviteClaim(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	base := env.server.URL + "/api"

	_, ownerToken := signUp(t, client, base, "owner")
	_, bobToken := signUp(t, client, base, "bob")
	_, carolToken := signUp(t, client, base, "carol")

	resp, body := requestJSON(t, client, http.MethodPost, base+"/groups", ownerToken, map[string]string{"name": "Pantry"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var group groupResponse
	if err := json.Unmarshal(body, &group); err != nil {
		t.Fatalf("decode group: %v", err)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/groups/"+group.ID+"/invites", ownerToken, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var invite inviteResponse
	if err := json.Unmarshal(body, &invite); err != nil {
		t.Fatalf("decode invite: %v", err)
	}

	statuses := make([]int, 2)
	var wg sync.WaitGroup
	for i, token := range []string{bobToken, carolToken} {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			req, err := http.NewRequest(http.MethodPost, base+"/invites/"+invite.Code, nil)
			if err != nil {
				return
			}
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := client.Do(req)
			if err != nil {
				return
			}
			_ = resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i, token)
	}
	wg.Wait()

	ok, notFound := 0, 0
	for _, status := range statuses {
		switch status {
		case http.StatusOK:
			ok++
		case http.StatusNotFound:
			notFound++
		}
	}
	if ok != 1 || notFound != 1 {
		t.Fatalf("expected one claim to win, got statuses %v", statuses)
	}
}
