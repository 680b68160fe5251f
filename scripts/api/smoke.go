// Minimal end-to-end smoke run against a live Bandhall API. Needs a
// seeded user with create rights in the target band.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

var (
	baseURL  = getenv("API_URL", "http://localhost:8080/v1")
	email    = getenv("SMOKE_EMAIL", "founder@example.com")
	password = getenv("SMOKE_PASSWORD", "changeme123")
	bandID   = getenv("SMOKE_BAND_ID", "")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	if bandID == "" {
		log.Fatal("SMOKE_BAND_ID is required")
	}

	token := login()
	proposalID := createProposal(token)
	castVote(token, proposalID)
	checkDetail(token, proposalID)
	closeProposal(token, proposalID)

	fmt.Println("✓ all endpoints passed")
}

func login() string {
	var resp struct{ Token string }
	doJSON("POST", "/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	}, &resp, http.StatusOK)
	if resp.Token == "" {
		log.Fatal("login: empty token")
	}
	return resp.Token
}

func createProposal(token string) string {
	var resp struct{ ID string }
	doJSON("POST", "/bands/"+bandID+"/proposals", token, map[string]any{
		"title":       "Smoke test proposal",
		"description": "Created by scripts/api/smoke.go",
		"type":        "GENERAL",
		"priority":    "LOW",
	}, &resp, http.StatusCreated)
	if resp.ID == "" {
		log.Fatal("create: empty proposal id")
	}
	return resp.ID
}

func castVote(token, proposalID string) {
	var resp struct{ Created bool }
	doJSON("POST", "/proposals/"+proposalID+"/votes", token, map[string]any{
		"vote":    "YES",
		"comment": "smoke",
	}, &resp, http.StatusCreated)
	if !resp.Created {
		log.Fatal("vote: expected a fresh vote")
	}
	// Overwrite should report created=false.
	doJSON("POST", "/proposals/"+proposalID+"/votes", token, map[string]any{
		"vote": "ABSTAIN",
	}, &resp, http.StatusOK)
	if resp.Created {
		log.Fatal("vote: overwrite reported as fresh")
	}
}

func checkDetail(token, proposalID string) {
	var resp struct {
		Tally struct {
			Abstain int
			Total   int
		}
	}
	doJSON("GET", "/proposals/"+proposalID, token, nil, &resp, http.StatusOK)
	if resp.Tally.Abstain != 1 || resp.Tally.Total != 1 {
		log.Fatalf("detail: unexpected tally %+v", resp.Tally)
	}
}

func closeProposal(token, proposalID string) {
	var resp struct{ Outcome string }
	doJSON("POST", "/proposals/"+proposalID+"/close", token, nil, &resp, http.StatusOK)
	// One abstain, zero countable votes: every method rejects.
	if resp.Outcome != "REJECTED" {
		log.Fatalf("close: expected REJECTED, got %s", resp.Outcome)
	}
}

func doJSON(method, path, token string, body any, out any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		log.Fatalf("%s %s: status %d, want %d", method, path, resp.StatusCode, want)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
}
