package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"grain_dryer/internal/service"
)

func TestSignUp_Success(t *testing.T) {
	auth := &mockAuth{signUpID: 42}
	r := newTestRouter(&service.Service{Authorization: auth})

	body := []byte(`{"username":"alice","fullname":"Alice A","email":"alice@dryer.local","password":"s3cr3t"}`)
	w := doRequest(r, http.MethodPost, "/auth/sign-up", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if auth.lastSignUp.Username != "alice" || auth.lastSignUp.Fullname != "Alice A" {
		t.Fatalf("params not forwarded: %+v", auth.lastSignUp)
	}
	var resp struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.ID != 42 {
		t.Fatalf("expected id 42, got %d", resp.ID)
	}
}

func TestSignUp_MissingRequiredFields(t *testing.T) {
	auth := &mockAuth{}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(r, http.MethodPost, "/auth/sign-up", []byte(`{"username":"alice"}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", w.Code)
	}
}

func TestSignUp_ServiceError(t *testing.T) {
	auth := &mockAuth{signUpErr: errors.New("username taken")}
	r := newTestRouter(&service.Service{Authorization: auth})

	body := []byte(`{"username":"alice","password":"pw"}`)
	w := doRequest(r, http.MethodPost, "/auth/sign-up", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
}

func TestSignIn_Success(t *testing.T) {
	auth := &mockAuth{genTokenToken: "jwt-token"}
	r := newTestRouter(&service.Service{Authorization: auth})

	body := []byte(`{"username":"alice","password":"pw"}`)
	w := doRequest(r, http.MethodPost, "/auth/sign-in", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Token != "jwt-token" {
		t.Fatalf("expected token, got %q", resp.Token)
	}
}

func TestSignIn_BadCredentialsIs401(t *testing.T) {
	auth := &mockAuth{genTokenErr: service.ErrInvalidPassword}
	r := newTestRouter(&service.Service{Authorization: auth})

	body := []byte(`{"username":"alice","password":"wrong"}`)
	w := doRequest(r, http.MethodPost, "/auth/sign-in", body, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := doRequest(r, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "ok" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
