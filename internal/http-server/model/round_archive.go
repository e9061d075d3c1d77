package model

import "time"

// RoundArchive is the durable record of a revealed round: everything a
// player needs to re-run verification offline.
type RoundArchive struct {
	ID             int64     `json:"id"`
	RoundUUID      string    `json:"round_uuid"`
	ServerSeed     string    `json:"server_seed"`
	ServerSeedHash string    `json:"server_seed_hash"`
	ClientSeed     string    `json:"client_seed"`
	Nonce          uint64    `json:"nonce"`
	Outcome        int       `json:"outcome"`
	RevealedAt     time.Time `json:"revealed_at"`
}
