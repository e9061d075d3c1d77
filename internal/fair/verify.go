package fair

import "crypto/subtle"

// Verify recomputes the commitment and the outcome from published values and
// reports whether both match. It is a predicate, not a validator: any
// mismatch yields false with no indication of which check failed, so callers
// can only learn "fairness established" or not.
//
// Independently implementable from the published protocol alone; see
// DeriveOutcome for the digest chain.
func Verify(serverSeed, serverSeedHash, clientSeed string, nonce uint64, claimedOutcome int) bool {
	if claimedOutcome < 0 || claimedOutcome >= WheelSize {
		return false
	}

	hashMatch := subtle.ConstantTimeCompare([]byte(HashSeed(serverSeed)), []byte(serverSeedHash)) == 1
	outcomeMatch := DeriveOutcome(serverSeed, clientSeed, nonce) == claimedOutcome

	return hashMatch && outcomeMatch
}
