// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package testutil

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aplane-algo/pdaverify/internal/pda"
)

// MockAccount is the state served for one address.
type MockAccount struct {
	Owner      pda.Address
	Lamports   uint64
	Executable bool
	Data       []byte
}

// MockRPCServer is a JSON-RPC endpoint answering getAccountInfo from an
// in-memory account map. Unknown addresses return a null value, the same as
// a real node for an account that does not exist.
type MockRPCServer struct {
	Server *httptest.Server

	mu       sync.Mutex
	accounts map[pda.Address]MockAccount
	calls    map[string]int
	// FailWith makes every request return this JSON-RPC error message.
	FailWith string
}

type rpcRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

// NewMockRPCServer starts a mock RPC server that is closed with the test.
func NewMockRPCServer(t *testing.T) *MockRPCServer {
	t.Helper()

	m := &MockRPCServer{
		accounts: make(map[pda.Address]MockAccount),
		calls:    make(map[string]int),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Server.Close)
	return m
}

// AddAccount registers an account at addr.
func (m *MockRPCServer) AddAccount(addr pda.Address, acct MockAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[addr] = acct
}

// Calls returns how many times method was requested.
func (m *MockRPCServer) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// URL returns the server URL.
func (m *MockRPCServer) URL() string {
	return m.Server.URL
}

func (m *MockRPCServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.calls[req.Method]++
	failWith := m.FailWith
	m.mu.Unlock()

	if failWith != "" {
		writeRPC(w, req.ID, nil, map[string]any{"code": -32000, "message": failWith})
		return
	}

	switch req.Method {
	case "getAccountInfo":
		m.handleGetAccountInfo(w, req)
	default:
		writeRPC(w, req.ID, nil, map[string]any{"code": -32601, "message": "Method not found"})
	}
}

func (m *MockRPCServer) handleGetAccountInfo(w http.ResponseWriter, req rpcRequest) {
	if len(req.Params) == 0 {
		writeRPC(w, req.ID, nil, map[string]any{"code": -32602, "message": "missing address"})
		return
	}
	var addrText string
	if err := json.Unmarshal(req.Params[0], &addrText); err != nil {
		writeRPC(w, req.ID, nil, map[string]any{"code": -32602, "message": err.Error()})
		return
	}
	addr, err := pda.ParseAddress(addrText)
	if err != nil {
		writeRPC(w, req.ID, nil, map[string]any{"code": -32602, "message": err.Error()})
		return
	}

	m.mu.Lock()
	acct, ok := m.accounts[addr]
	m.mu.Unlock()

	result := map[string]any{
		"context": map[string]any{"slot": 1},
		"value":   nil,
	}
	if ok {
		result["value"] = map[string]any{
			"data":       []string{base64.StdEncoding.EncodeToString(acct.Data), "base64"},
			"executable": acct.Executable,
			"lamports":   acct.Lamports,
			"owner":      acct.Owner.String(),
			"rentEpoch":  0,
			"space":      len(acct.Data),
		}
	}
	writeRPC(w, req.ID, result, nil)
}

func writeRPC(w http.ResponseWriter, id json.RawMessage, result any, rpcErr map[string]any) {
	resp := map[string]any{"jsonrpc": "2.0", "id": id}
	if rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
