package fair

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"
)

const (
	// hashIterations is the published length of the digest chain. Players
	// reproducing an outcome must apply exactly this many SHA-256 rounds.
	hashIterations = 5

	// WheelSize is the result domain of a single-zero roulette wheel: 0-36.
	WheelSize = 37
)

// rejectBound is the largest multiple of WheelSize representable in 64 bits.
// Candidates at or above it are rejected so the final modulo carries no bias.
const rejectBound = (^uint64(0) / WheelSize) * WheelSize

// DeriveOutcome maps a seed pair and nonce to a winning number in [0, 36].
// The algorithm is part of the public fairness protocol and must match any
// third-party verifier byte for byte:
//
//  1. d = SHA256(serverSeed + ":" + clientSeed + ":" + decimal(nonce))
//  2. for i = 1..4: d = SHA256(hex(d) + ":" + decimal(i))
//     (five SHA-256 applications in total)
//  3. scan d in four consecutive big-endian 8-byte windows; the first value
//     below floor(2^64/37)*37 is accepted and reduced mod 37 (rejection
//     sampling). If every window rejects, the chain is extended with
//     d = SHA256(hex(d) + ":ext:" + decimal(k)) for k = 0, 1, ... and the
//     scan repeats.
//
// The function is pure: no clock, no randomness, no shared state.
func DeriveOutcome(serverSeed, clientSeed string, nonce uint64) int {
	digest := sha256.Sum256([]byte(serverSeed + ":" + clientSeed + ":" + strconv.FormatUint(nonce, 10)))

	for i := 1; i < hashIterations; i++ {
		digest = sha256.Sum256([]byte(hex.EncodeToString(digest[:]) + ":" + strconv.Itoa(i)))
	}

	for ext := 0; ; ext++ {
		for off := 0; off+8 <= len(digest); off += 8 {
			candidate := binary.BigEndian.Uint64(digest[off : off+8])
			if candidate < rejectBound {
				return int(candidate % WheelSize)
			}
		}

		digest = sha256.Sum256([]byte(hex.EncodeToString(digest[:]) + ":ext:" + strconv.Itoa(ext)))
	}
}
