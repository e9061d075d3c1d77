package show_round

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"cryptochecker/internal/fair"
	"cryptochecker/internal/http-server/model"
	resp "cryptochecker/internal/lib/api/response"
	"cryptochecker/internal/lib/logger/sl"
	"cryptochecker/internal/store"
)

type Response struct {
	resp.Response
	RoundID        string `json:"round_id"`
	ServerSeedHash string `json:"server_seed_hash"`
	ClientSeed     string `json:"client_seed"`
	Nonce          uint64 `json:"nonce"`
	State          string `json:"state"`
	ServerSeed     string `json:"server_seed,omitempty"`
	Outcome        *int   `json:"outcome,omitempty"`
}

type ArchiveReader interface {
	GetArchiveByRoundUUID(roundUUID string) (*model.RoundArchive, error)
}

type ShowRound struct {
	log     *slog.Logger
	store   store.RoundStore
	archive ArchiveReader
}

func NewShowRound(log *slog.Logger, roundStore store.RoundStore, archive ArchiveReader) *ShowRound {
	return &ShowRound{
		log:     log,
		store:   roundStore,
		archive: archive,
	}
}

func (h *ShowRound) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.round.show.New"

		log := h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		roundID, err := uuid.Parse(chi.URLParam(r, "uuid"))
		if err != nil {
			log.Error("invalid round id", sl.Err(err))

			render.JSON(w, r, resp.Error("invalid round id", http.StatusBadRequest))

			return
		}

		round, err := h.store.Get(roundID)
		if err != nil {
			// evicted or never lived here; revealed rounds survive in the
			// durable archive
			archive, archiveErr := h.archive.GetArchiveByRoundUUID(roundID.String())
			if archiveErr != nil {
				log.Error("failed to find round", sl.Err(err))

				render.JSON(w, r, resp.Error("round not found", http.StatusNotFound))

				return
			}

			log.Info("round served from archive", slog.String("round_id", archive.RoundUUID))

			render.JSON(w, r, Response{
				Response:       resp.OK(),
				RoundID:        archive.RoundUUID,
				ServerSeedHash: archive.ServerSeedHash,
				ClientSeed:     archive.ClientSeed,
				Nonce:          archive.Nonce,
				State:          string(fair.StateRevealed),
				ServerSeed:     archive.ServerSeed,
				Outcome:        &archive.Outcome,
			})

			return
		}

		response := Response{
			Response:       resp.OK(),
			RoundID:        round.ID.String(),
			ServerSeedHash: round.ServerSeedHash,
			ClientSeed:     round.ClientSeed,
			Nonce:          round.Nonce,
			State:          string(round.State()),
		}

		// seed and outcome exist in the view only once the round is revealed
		if round.State() == fair.StateRevealed {
			seed, err := round.ServerSeed()
			if err == nil {
				response.ServerSeed = seed
			}

			outcome, err := round.Outcome()
			if err == nil {
				response.Outcome = &outcome
			}
		}

		render.JSON(w, r, response)
	}
}
