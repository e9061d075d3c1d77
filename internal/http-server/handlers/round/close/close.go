package close_round

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	resp "cryptochecker/internal/lib/api/response"
	"cryptochecker/internal/lib/logger/sl"
	"cryptochecker/internal/store"
)

type Response struct {
	resp.Response
	RoundID string `json:"round_id"`
	State   string `json:"state"`
}

type CloseRound struct {
	log   *slog.Logger
	store store.RoundStore
}

func NewCloseRound(log *slog.Logger, roundStore store.RoundStore) *CloseRound {
	return &CloseRound{
		log:   log,
		store: roundStore,
	}
}

func (h *CloseRound) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.round.close.New"

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

		// Close fails only on a wrong-state transition
		if err = round.Close(); err != nil {
			log.Info("close rejected", slog.String("state", string(round.State())))

			render.JSON(w, r, resp.Error("round is not open", http.StatusConflict))

			return
		}

		log.Info("round closed", slog.String("round_id", round.ID.String()))

		render.JSON(w, r, Response{
			Response: resp.OK(),
			RoundID:  round.ID.String(),
			State:    string(round.State()),
		})
	}
}
