package repository

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"cryptochecker/internal/http-server/model"
)

var ErrArchiveNotFound = errors.New("archive not found")

// NoopRoundRepository stands in when no database is configured: reveal
// records are dropped with a debug log and the archive reads back empty.
type NoopRoundRepository struct {
	log *slog.Logger
}

func NewNoopRoundRepository(log *slog.Logger) *NoopRoundRepository {
	return &NoopRoundRepository{log: log}
}

func (repo *NoopRoundRepository) ArchiveRound(archive model.RoundArchive) (int64, error) {
	repo.log.Debug("archive disabled, dropping reveal record",
		slog.String("round_uuid", archive.RoundUUID))

	return 0, nil
}

func (repo *NoopRoundRepository) GetArchiveByRoundUUID(roundUUID string) (*model.RoundArchive, error) {
	const op = "repository.noop.GetArchiveByRoundUUID"

	return nil, fmt.Errorf("%s: %w", op, ErrArchiveNotFound)
}
