package open_round

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"

	"cryptochecker/internal/fair"
	resp "cryptochecker/internal/lib/api/response"
	"cryptochecker/internal/lib/logger/sl"
	"cryptochecker/internal/store"
)

type Request struct {
	ClientSeed string  `json:"client_seed,omitempty" validate:"omitempty,max=128"`
	Nonce      *uint64 `json:"nonce,omitempty"`
}

type Response struct {
	resp.Response
	RoundID        string `json:"round_id"`
	ServerSeedHash string `json:"server_seed_hash"`
	ClientSeed     string `json:"client_seed"`
	Nonce          uint64 `json:"nonce"`
	State          string `json:"state"`
}

type OpenRound struct {
	log               *slog.Logger
	validator         *validator.Validate
	store             store.RoundStore
	nonces            *fair.NonceCounter
	defaultClientSeed string
}

func NewOpenRound(
	log *slog.Logger,
	roundStore store.RoundStore,
	nonces *fair.NonceCounter,
	defaultClientSeed string) *OpenRound {
	return &OpenRound{
		log:               log,
		validator:         validator.New(),
		store:             roundStore,
		nonces:            nonces,
		defaultClientSeed: defaultClientSeed,
	}
}

func (h *OpenRound) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.round.open.New"

		var (
			err   error
			req   Request
			log   *slog.Logger
			round *fair.Round
		)

		log = h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		// both fields are optional, so an empty body opens a round too
		err = render.DecodeJSON(r.Body, &req)
		if err != nil && !errors.Is(err, io.EOF) {
			log.Error("failed to decode request body", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to decode request body", http.StatusBadRequest))

			return
		}

		if err = h.validator.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		clientSeed := req.ClientSeed
		if clientSeed == "" {
			clientSeed = h.defaultClientSeed
		}

		var nonce uint64
		if req.Nonce != nil {
			nonce = *req.Nonce
		} else {
			nonce = h.nonces.Next()
		}

		round, err = fair.NewRound(clientSeed, nonce)
		if err != nil {
			log.Error("failed to open round", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to open round", http.StatusInternalServerError))

			return
		}

		if err = h.store.Save(round); err != nil {
			log.Error("failed to save round", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to save round", http.StatusInternalServerError))

			return
		}

		// only the commitment leaves the engine here; the seed stays hidden
		log.Info("round opened",
			slog.String("round_id", round.ID.String()),
			sl.Uint64("nonce", round.Nonce))

		render.JSON(w, r, Response{
			Response:       resp.OK(),
			RoundID:        round.ID.String(),
			ServerSeedHash: round.ServerSeedHash,
			ClientSeed:     round.ClientSeed,
			Nonce:          round.Nonce,
			State:          string(round.State()),
		})
	}
}
