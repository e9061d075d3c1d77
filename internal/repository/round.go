package repository

import (
	"fmt"

	"cryptochecker/internal/http-server/handlers/mysql"
	"cryptochecker/internal/http-server/model"
)

type RoundRepository struct {
	dbhandler mysql.Handler
}

func NewRoundRepository(dbhandler mysql.Handler) *RoundRepository {
	return &RoundRepository{dbhandler: dbhandler}
}

func (repo *RoundRepository) ArchiveRound(archive model.RoundArchive) (int64, error) {
	const op = "repository.round.ArchiveRound"

	const query = "INSERT INTO round_archives(round_uuid," +
		" server_seed," +
		" server_seed_hash," +
		" client_seed," +
		" nonce," +
		" outcome," +
		" revealed_at) " +
		"VALUES(?, ?, ?, ?, ?, ?, ?)"
	res, err := repo.dbhandler.PrepareAndExecute(query,
		archive.RoundUUID,
		archive.ServerSeed,
		archive.ServerSeedHash,
		archive.ClientSeed,
		archive.Nonce,
		archive.Outcome,
		archive.RevealedAt)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, _ := res.LastInsertId()

	return id, nil
}

func (repo *RoundRepository) GetArchiveByRoundUUID(roundUUID string) (*model.RoundArchive, error) {
	const op = "repository.round.GetArchiveByRoundUUID"

	const query = "SELECT id," +
		" round_uuid," +
		" server_seed," +
		" server_seed_hash," +
		" client_seed," +
		" nonce," +
		" outcome," +
		" revealed_at " +
		"FROM round_archives WHERE round_uuid = ?"
	row, err := repo.dbhandler.PrepareAndQueryRow(query, roundUUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	archive := &model.RoundArchive{}
	if err = row.Scan(
		&archive.ID,
		&archive.RoundUUID,
		&archive.ServerSeed,
		&archive.ServerSeedHash,
		&archive.ClientSeed,
		&archive.Nonce,
		&archive.Outcome,
		&archive.RevealedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return archive, nil
}
