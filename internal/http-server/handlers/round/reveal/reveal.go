package reveal_round

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"cryptochecker/internal/http-server/model"
	resp "cryptochecker/internal/lib/api/response"
	"cryptochecker/internal/lib/logger/sl"
	"cryptochecker/internal/store"
)

type Response struct {
	resp.Response
	RoundID        string `json:"round_id"`
	ServerSeed     string `json:"server_seed"`
	ServerSeedHash string `json:"server_seed_hash"`
	ClientSeed     string `json:"client_seed"`
	Nonce          uint64 `json:"nonce"`
	Outcome        int    `json:"outcome"`
	State          string `json:"state"`
}

type RoundArchiver interface {
	ArchiveRound(archive model.RoundArchive) (int64, error)
}

type RevealRound struct {
	log      *slog.Logger
	store    store.RoundStore
	archiver RoundArchiver
}

func NewRevealRound(log *slog.Logger, roundStore store.RoundStore, archiver RoundArchiver) *RevealRound {
	return &RevealRound{
		log:      log,
		store:    roundStore,
		archiver: archiver,
	}
}

func (h *RevealRound) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.round.reveal.New"

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
			log.Error("failed to find round", sl.Err(err))

			render.JSON(w, r, resp.Error("round not found", http.StatusNotFound))

			return
		}

		// Reveal fails only on a wrong-state transition
		if err = round.Reveal(); err != nil {
			log.Info("reveal rejected", slog.String("state", string(round.State())))

			render.JSON(w, r, resp.Error("round is not closed", http.StatusConflict))

			return
		}

		serverSeed, err := round.ServerSeed()
		if err != nil {
			log.Error("failed to read revealed seed", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to reveal round", http.StatusInternalServerError))

			return
		}

		outcome, err := round.Outcome()
		if err != nil {
			log.Error("failed to read outcome", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to reveal round", http.StatusInternalServerError))

			return
		}

		log.Info("round revealed",
			slog.String("round_id", round.ID.String()),
			sl.Int("outcome", outcome))

		// the round is already revealed; an archive failure is logged but
		// must not suppress the proof the player is owed
		archive := model.RoundArchive{
			RoundUUID:      round.ID.String(),
			ServerSeed:     serverSeed,
			ServerSeedHash: round.ServerSeedHash,
			ClientSeed:     round.ClientSeed,
			Nonce:          round.Nonce,
			Outcome:        outcome,
			RevealedAt:     time.Now(),
		}
		if _, err = h.archiver.ArchiveRound(archive); err != nil {
			log.Error("failed to archive round", sl.Err(err))
		}

		render.JSON(w, r, Response{
			Response:       resp.OK(),
			RoundID:        round.ID.String(),
			ServerSeed:     serverSeed,
			ServerSeedHash: round.ServerSeedHash,
			ClientSeed:     round.ClientSeed,
			Nonce:          round.Nonce,
			Outcome:        outcome,
			State:          string(round.State()),
		})
	}
}
