package verify

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"

	"cryptochecker/internal/fair"
	resp "cryptochecker/internal/lib/api/response"
	"cryptochecker/internal/lib/logger/sl"
)

type Request struct {
	ServerSeed     string `json:"server_seed" validate:"required"`
	ServerSeedHash string `json:"server_seed_hash" validate:"required,len=64,hexadecimal"`
	ClientSeed     string `json:"client_seed" validate:"required"`
	Nonce          uint64 `json:"nonce"`
	Outcome        *int   `json:"outcome" validate:"required,min=0,max=36"`
}

type Response struct {
	resp.Response
	Valid bool `json:"valid"`
}

type Verify struct {
	log       *slog.Logger
	validator *validator.Validate
}

func NewVerify(log *slog.Logger) *Verify {
	return &Verify{
		log:       log,
		validator: validator.New(),
	}
}

func (h *Verify) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.verify.New"

		var (
			err error
			req Request
			log *slog.Logger
		)

		log = h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
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

		valid := fair.Verify(req.ServerSeed, req.ServerSeedHash, req.ClientSeed, req.Nonce, *req.Outcome)

		// a boolean is the whole answer; the cause of a mismatch is never
		// disclosed or logged
		log.Info("verification performed", slog.Bool("valid", valid))

		render.JSON(w, r, Response{
			Response: resp.OK(),
			Valid:    valid,
		})
	}
}
