package fair

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// State is the betting-window state of a round. Transitions are
// one-directional: open -> closed -> revealed, with revealed terminal.
type State string

const (
	StateOpen     State = "open"
	StateClosed   State = "closed"
	StateRevealed State = "revealed"
)

var (
	// ErrEntropy means the secure random source failed at round creation.
	// There is no fallback to a weaker source.
	ErrEntropy = errors.New("secure random source unavailable")

	// ErrInvalidState means a transition was attempted from the wrong state.
	// The round is left unchanged.
	ErrInvalidState = errors.New("invalid round state transition")
)

const serverSeedBytes = 32

// Round is a single unit of play. The server seed stays hidden until the
// round is revealed; only its hash (the commitment) is public from creation.
type Round struct {
	ID             uuid.UUID
	ClientSeed     string
	Nonce          uint64
	ServerSeedHash string

	mu         sync.Mutex
	state      State
	serverSeed string
	outcome    int
}

// NewRound generates a fresh server seed from crypto/rand, commits to it via
// its SHA-256 hash and opens the round for betting.
func NewRound(clientSeed string, nonce uint64) (*Round, error) {
	const op = "fair.NewRound"

	raw := make([]byte, serverSeedBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrEntropy)
	}

	return NewRoundFromSeed(hex.EncodeToString(raw), clientSeed, nonce), nil
}

// NewRoundFromSeed opens a round over a caller-supplied server seed. Used for
// deterministic replay of archived rounds; live rounds come from NewRound.
func NewRoundFromSeed(serverSeed, clientSeed string, nonce uint64) *Round {
	return &Round{
		ID:             uuid.New(),
		ClientSeed:     clientSeed,
		Nonce:          nonce,
		ServerSeedHash: HashSeed(serverSeed),
		state:          StateOpen,
		serverSeed:     serverSeed,
	}
}

// HashSeed computes the published commitment for a server seed: the SHA-256
// digest of the seed string, hex-encoded.
func HashSeed(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))

	return hex.EncodeToString(sum[:])
}

// State returns the current betting-window state.
func (r *Round) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

// Close freezes the betting window. Valid only from the open state; at most
// one concurrent caller succeeds, all others get ErrInvalidState.
func (r *Round) Close() error {
	const op = "fair.Round.Close"

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateOpen {
		return fmt.Errorf("%s: %w", op, ErrInvalidState)
	}

	r.state = StateClosed

	return nil
}

// Reveal publishes the server seed and computes the outcome. Valid only from
// the closed state. The outcome is derived exactly once and cached; after
// Reveal the round is immutable.
func (r *Round) Reveal() error {
	const op = "fair.Round.Reveal"

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateClosed {
		return fmt.Errorf("%s: %w", op, ErrInvalidState)
	}

	r.outcome = DeriveOutcome(r.serverSeed, r.ClientSeed, r.Nonce)
	r.state = StateRevealed

	return nil
}

// ServerSeed returns the secret seed. It is observable only after Reveal.
func (r *Round) ServerSeed() (string, error) {
	const op = "fair.Round.ServerSeed"

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRevealed {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidState)
	}

	return r.serverSeed, nil
}

// Outcome returns the winning number. Available only after Reveal.
func (r *Round) Outcome() (int, error) {
	const op = "fair.Round.Outcome"

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRevealed {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidState)
	}

	return r.outcome, nil
}
