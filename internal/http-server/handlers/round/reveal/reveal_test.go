package reveal_round_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"cryptochecker/internal/fair"
	"cryptochecker/internal/http-server/handlers/round/close"
	"cryptochecker/internal/http-server/handlers/round/open"
	"cryptochecker/internal/http-server/handlers/round/reveal"
	"cryptochecker/internal/http-server/model"
	"cryptochecker/internal/store"
)

type archiverStub struct {
	mu       sync.Mutex
	archived []model.RoundArchive
}

func (a *archiverStub) ArchiveRound(archive model.RoundArchive) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.archived = append(a.archived, archive)

	return int64(len(a.archived)), nil
}

func newTestRouter(roundStore store.RoundStore, archiver reveal_round.RoundArchiver) *chi.Mux {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	var nonces fair.NonceCounter

	router := chi.NewRouter()
	router.Post("/round/open", open_round.NewOpenRound(log, roundStore, &nonces, "cryptochecker").New())
	router.Post("/round/{uuid}/close", close_round.NewCloseRound(log, roundStore).New())
	router.Post("/round/{uuid}/reveal", reveal_round.NewRevealRound(log, roundStore, archiver).New())

	return router
}

func TestRoundLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	roundStore := store.NewMemoryStore(time.Minute, time.Minute)
	archiver := &archiverStub{}
	router := newTestRouter(roundStore, archiver)

	// open
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/round/open",
		bytes.NewBufferString(`{"client_seed":"player-7","nonce":1}`)))

	var opened open_round.Response
	if err := json.NewDecoder(rr.Body).Decode(&opened); err != nil {
		t.Fatalf("failed to decode open response: %v", err)
	}
	if opened.State != string(fair.StateOpen) {
		t.Fatalf("unexpected state after open: %s", opened.State)
	}
	if len(opened.ServerSeedHash) != 64 {
		t.Fatalf("unexpected commitment length: %d", len(opened.ServerSeedHash))
	}

	// close
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/round/"+opened.RoundID+"/close", nil))

	var closed close_round.Response
	if err := json.NewDecoder(rr.Body).Decode(&closed); err != nil {
		t.Fatalf("failed to decode close response: %v", err)
	}
	if closed.State != string(fair.StateClosed) {
		t.Fatalf("unexpected state after close: %s", closed.State)
	}

	// reveal
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/round/"+opened.RoundID+"/reveal", nil))

	var revealed reveal_round.Response
	if err := json.NewDecoder(rr.Body).Decode(&revealed); err != nil {
		t.Fatalf("failed to decode reveal response: %v", err)
	}
	if revealed.State != string(fair.StateRevealed) {
		t.Fatalf("unexpected state after reveal: %s", revealed.State)
	}

	// the published reveal must verify against the published commitment
	if revealed.ServerSeedHash != opened.ServerSeedHash {
		t.Error("commitment changed between open and reveal")
	}
	if !fair.Verify(revealed.ServerSeed, opened.ServerSeedHash, "player-7", 1, revealed.Outcome) {
		t.Error("revealed round failed verification")
	}

	if len(archiver.archived) != 1 {
		t.Fatalf("expected one archived round, got: %d", len(archiver.archived))
	}
	if archiver.archived[0].RoundUUID != opened.RoundID {
		t.Error("archived record does not match the revealed round")
	}
}

func TestRoundTransitionConflictsOverHTTP(t *testing.T) {
	t.Parallel()

	roundStore := store.NewMemoryStore(time.Minute, time.Minute)
	router := newTestRouter(roundStore, &archiverStub{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/round/open", nil))

	var opened open_round.Response
	if err := json.NewDecoder(rr.Body).Decode(&opened); err != nil {
		t.Fatalf("failed to decode open response: %v", err)
	}

	// reveal before close
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/round/"+opened.RoundID+"/reveal", nil))

	var early reveal_round.Response
	if err := json.NewDecoder(rr.Body).Decode(&early); err != nil {
		t.Fatalf("failed to decode reveal response: %v", err)
	}
	if early.Status != http.StatusConflict {
		t.Errorf("reveal before close: want status %d, got %d", http.StatusConflict, early.Status)
	}

	// double close
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/round/"+opened.RoundID+"/close", nil))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/round/"+opened.RoundID+"/close", nil))

	var doubleClose close_round.Response
	if err := json.NewDecoder(rr.Body).Decode(&doubleClose); err != nil {
		t.Fatalf("failed to decode close response: %v", err)
	}
	if doubleClose.Status != http.StatusConflict {
		t.Errorf("double close: want status %d, got %d", http.StatusConflict, doubleClose.Status)
	}

	// unknown round
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/round/00000000-0000-0000-0000-000000000000/close", nil))

	var missing close_round.Response
	if err := json.NewDecoder(rr.Body).Decode(&missing); err != nil {
		t.Fatalf("failed to decode close response: %v", err)
	}
	if missing.Status != http.StatusNotFound {
		t.Errorf("unknown round: want status %d, got %d", http.StatusNotFound, missing.Status)
	}
}
