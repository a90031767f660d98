package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"useful-api/internal/application"
	"useful-api/internal/domain"
	"useful-api/internal/infrastructure/http/openapi"
	"useful-api/internal/infrastructure/logx"

	"go.uber.org/zap"
)

var _ openapi.ServerInterface = (*Server)(nil)

type Server struct {
	svc  *application.Service
	ping func(ctx context.Context) error
}

func NewServer(svc *application.Service) *Server { return &Server{svc: svc} }

// SetReadyCheck installs the probe used by /readyz.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

func (s *Server) GetHello(w http.ResponseWriter, _ *http.Request, params openapi.GetHelloParams) {
	msg := application.Hello()
	respond(w, params.Format, msg, openapi.Hello{Message: msg})
}

func (s *Server) GetMensatoshi(w http.ResponseWriter, r *http.Request, params openapi.GetMensatoshiParams) {
	q, err := s.svc.Mensatoshi(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, params.Format, q.Message, openapi.MensaSatoshi{Satoshi: q.Satoshi, Message: q.Message})
}

func (s *Server) GetPriceHistory(w http.ResponseWriter, r *http.Request, params openapi.GetPriceHistoryParams) {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
		if limit == 0 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
	}
	snaps, err := s.svc.PriceHistory(r.Context(), limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	resp := make([]openapi.PriceSnapshot, 0, len(snaps))
	for _, sn := range snaps {
		resp = append(resp, openapi.PriceSnapshot{
			Id:            sn.ID,
			Pair:          string(sn.Pair),
			SatoshiPerEur: sn.SatoshiPerEUR,
			QuotedAt:      sn.QuotedAt,
			Source:        sn.Source,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetMensabeer(w http.ResponseWriter, r *http.Request, params openapi.GetMensabeerParams) {
	q, err := s.svc.MensaBeer(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, params.Format, q.Message, openapi.MensaBeer{Beers: q.Beers.InexactFloat64(), Message: q.Message})
}

func (s *Server) GetCongressbeer(w http.ResponseWriter, r *http.Request, params openapi.GetCongressbeerParams) {
	satoshi := float64(application.CongressBeerSatoshi)
	if params.Satoshi != nil {
		satoshi = *params.Satoshi
	}
	q, err := s.svc.CongressBeer(satoshi)
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, params.Format, q.Message, openapi.CongressBeer{Congressbeers: q.Beers, Message: q.Message})
}

func (s *Server) GetShark(w http.ResponseWriter, r *http.Request, params openapi.GetSharkParams) {
	rep, err := s.svc.Shark(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, params.Format, rep.Message, openapi.Shark{
		Beeghaj: rep.Stock.Beeghaj,
		Smolhaj: rep.Stock.Smolhaj,
		Whale:   rep.Stock.Whale,
		Message: rep.Message,
	})
}

func (s *Server) GetTeapot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusTeapot)
	_, _ = w.Write([]byte("I'm a teapot"))
}

func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapi.Spec())
}

func respond(w http.ResponseWriter, format *openapi.Format, text string, body any) {
	if format != nil && *format == openapi.FormatJSON {
		writeJSON(w, http.StatusOK, body)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// fail maps service errors onto HTTP statuses.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var fe *domain.FetchError
	switch {
	case errors.As(err, &fe):
		writeError(w, http.StatusServiceUnavailable, fe.Error())
	case errors.Is(err, domain.ErrStock):
		logx.WithFields(r.Context()).Warn("shark_lookup_failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, application.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logx.WithFields(r.Context()).Error("request_failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, openapi.Error{Code: status, Message: msg})
}
