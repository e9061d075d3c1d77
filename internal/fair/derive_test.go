package fair

import "testing"

func TestDeriveOutcomeDeterminism(t *testing.T) {
	cases := []struct {
		name       string
		serverSeed string
		clientSeed string
		nonce      uint64
	}{
		{
			name:       "Simple",
			serverSeed: "abc123",
			clientSeed: "player-7",
			nonce:      1,
		},
		{
			name:       "EmptyClientSeed",
			serverSeed: "abc123",
			clientSeed: "",
			nonce:      0,
		},
		{
			name:       "LargeNonce",
			serverSeed: "f3a9c0d1e2b4a5968778695a4b3c2d1e0f1e2d3c4b5a69788796a5b4c3d2e1f0",
			clientSeed: "player-7",
			nonce:      18446744073709551615,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			first := DeriveOutcome(tc.serverSeed, tc.clientSeed, tc.nonce)
			second := DeriveOutcome(tc.serverSeed, tc.clientSeed, tc.nonce)

			if first != second {
				t.Errorf("outcome not deterministic, first: %d, second: %d", first, second)
			}
		})
	}
}

func TestDeriveOutcomeRange(t *testing.T) {
	t.Parallel()

	for nonce := uint64(0); nonce < 10000; nonce++ {
		outcome := DeriveOutcome("abc123", "player-7", nonce)

		if outcome < 0 || outcome >= WheelSize {
			t.Fatalf("outcome %d out of range for nonce %d", outcome, nonce)
		}
	}
}

// Chi-square over 37 bins, df 36. The 0.001 critical value is 67.99; the
// bound below leaves headroom so an honest uniform sampler never flakes.
func TestDeriveOutcomeUniformity(t *testing.T) {
	t.Parallel()

	const (
		trials = 10000
		bound  = 80.0
	)

	var bins [WheelSize]int
	for nonce := uint64(0); nonce < trials; nonce++ {
		bins[DeriveOutcome("abc123", "player-7", nonce)]++
	}

	expected := float64(trials) / float64(WheelSize)

	var chi2 float64
	for _, observed := range bins {
		diff := float64(observed) - expected
		chi2 += diff * diff / expected
	}

	if chi2 > bound {
		t.Errorf("uniformity rejected, chi-square: %f, bound: %f", chi2, bound)
	}
}

func TestDeriveOutcomeNonceSensitivity(t *testing.T) {
	t.Parallel()

	// Adjacent nonces collide with probability ~1/37; over 1000 pairs the
	// expected number of changed outcomes is ~973.
	const pairs = 1000

	changed := 0
	for nonce := uint64(0); nonce < pairs; nonce++ {
		if DeriveOutcome("abc123", "player-7", nonce) != DeriveOutcome("abc123", "player-7", nonce+1) {
			changed++
		}
	}

	if changed < 900 {
		t.Errorf("nonce barely affects outcome, changed: %d of %d", changed, pairs)
	}
}

func TestDeriveOutcomeSeedSensitivity(t *testing.T) {
	t.Parallel()

	// Same story for the seeds: flipping either one must reshuffle outcomes.
	const trials = 1000

	changedServer := 0
	changedClient := 0
	for nonce := uint64(0); nonce < trials; nonce++ {
		base := DeriveOutcome("abc123", "player-7", nonce)

		if DeriveOutcome("abc124", "player-7", nonce) != base {
			changedServer++
		}
		if DeriveOutcome("abc123", "player-8", nonce) != base {
			changedClient++
		}
	}

	if changedServer < 900 {
		t.Errorf("server seed barely affects outcome, changed: %d of %d", changedServer, trials)
	}
	if changedClient < 900 {
		t.Errorf("client seed barely affects outcome, changed: %d of %d", changedClient, trials)
	}
}
