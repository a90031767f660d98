package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"useful-api/internal/domain"

	"github.com/stretchr/testify/require"
)

func setup() http.Handler {
	srv := newTestServer(
		stubFeed{price: 8_333_333.33},
		stubStock{out: domain.SharkStock{Store: "147", Beeghaj: 12, Smolhaj: 3, Whale: 0}},
		sampleHistory(),
	)
	return NewRouter(srv)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var e struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e.Code, e.Message
}

func TestHealthz(t *testing.T) {
	rec := get(t, setup(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	require.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	rec := httptest.NewRecorder()
	setup().ServeHTTP(rec, req)
	require.Equal(t, "rid-1", rec.Header().Get("X-Request-ID"))
}

func TestHello(t *testing.T) {
	h := setup()
	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Hello, World!", rec.Body.String())

	rec = get(t, h, "/?format=json")
	require.JSONEq(t, `{"message":"Hello, World!"}`, rec.Body.String())
}

func TestMensatoshi_Plain(t *testing.T) {
	rec := get(t, setup(), "/mensatoshi")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "Der Mensa-Eintopf kostet aktuell 10000000 Satoshi.", rec.Body.String())
}

func TestMensatoshi_JSON(t *testing.T) {
	rec := get(t, setup(), "/mensatoshi?format=json")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t,
		`{"satoshi":10000000,"message":"Der Mensa-Eintopf kostet aktuell 10000000 Satoshi."}`,
		rec.Body.String())
}

func TestMensatoshi_UnknownFormatIsPlain(t *testing.T) {
	rec := get(t, setup(), "/mensatoshi?format=xml")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Der Mensa-Eintopf kostet aktuell 10000000 Satoshi.", rec.Body.String())
}

func TestMensatoshi_FetchFailure(t *testing.T) {
	fe := domain.NewFetchError(domain.FetchCauseDecode,
		"Error deserializing CoinGecko response. Probably rate limited.", errors.New("status 429"))
	h := NewRouter(newTestServer(stubFeed{err: fe}, stubStock{}, nil))

	for _, target := range []string{"/mensatoshi", "/mensatoshi?format=json", "/mensabeer"} {
		rec := get(t, h, target)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		code, msg := decodeError(t, rec)
		require.Equal(t, http.StatusServiceUnavailable, code)
		require.Equal(t, "Error deserializing CoinGecko response. Probably rate limited.", msg)
	}
}

func TestMensatoshi_NonFinitePrice(t *testing.T) {
	h := NewRouter(newTestServer(stubFeed{price: math.Inf(1)}, stubStock{}, nil))
	rec := get(t, h, "/mensatoshi")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	code, _ := decodeError(t, rec)
	require.Equal(t, http.StatusServiceUnavailable, code)
}

func TestMensabeer(t *testing.T) {
	h := setup()
	rec := get(t, h, "/mensabeer")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Für einen Mensa-Eintopf bekommt man aktuell 144927.54 Congressbeers.", rec.Body.String())

	rec = get(t, h, "/mensabeer?format=json")
	var body struct {
		Beers float64 `json:"beers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.InDelta(t, 144927.54, body.Beers, 1e-9)
}

func TestCongressbeer(t *testing.T) {
	h := setup()

	rec := get(t, h, "/congressbeer?satoshi=1000")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "1000 Satoshi entspricht 14 Congressbeers.", rec.Body.String())

	rec = get(t, h, "/congressbeer?satoshi=1000&format=json")
	require.JSONEq(t, `{"congressbeers":14,"message":"1000 Satoshi entspricht 14 Congressbeers."}`, rec.Body.String())

	rec = get(t, h, "/congressbeer")
	require.Equal(t, "69 Satoshi entspricht 1 Congressbeers.", rec.Body.String())
}

func TestCongressbeer_BadParam(t *testing.T) {
	rec := get(t, setup(), "/congressbeer?satoshi=lots")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	code, msg := decodeError(t, rec)
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, msg, "satoshi")
}

func TestShark(t *testing.T) {
	h := setup()
	rec := get(t, h, "/shark")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Ikea currently has 12 BLÅHAJ, 3 smol BLÅHAJ and 0 whales in stock", rec.Body.String())

	rec = get(t, h, "/shark?format=json")
	require.JSONEq(t,
		`{"beeghaj":12,"smolhaj":3,"whale":0,"message":"Ikea currently has 12 BLÅHAJ, 3 smol BLÅHAJ and 0 whales in stock"}`,
		rec.Body.String())
}

func TestShark_UpstreamFailure(t *testing.T) {
	h := NewRouter(newTestServer(stubFeed{price: 1}, stubStock{err: domain.ErrStock}, nil))
	rec := get(t, h, "/shark")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	code, _ := decodeError(t, rec)
	require.Equal(t, http.StatusBadGateway, code)
}

func TestTeapot(t *testing.T) {
	rec := get(t, setup(), "/teapot")
	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestPriceHistory(t *testing.T) {
	h := setup()

	rec := get(t, h, "/mensatoshi/history?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var snaps []struct {
		ID            int64   `json:"id"`
		Pair          string  `json:"pair"`
		SatoshiPerEur float64 `json:"satoshi_per_eur"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snaps))
	require.Len(t, snaps, 2)
	require.Equal(t, int64(3), snaps[0].ID)
	require.Equal(t, "BTC/EUR", snaps[0].Pair)

	for _, bad := range []string{"0", "101", "-1", "abc"} {
		rec = get(t, h, "/mensatoshi/history?limit="+bad)
		require.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestPriceHistory_NoBackend(t *testing.T) {
	h := NewRouter(newTestServer(stubFeed{price: 1}, stubStock{}, nil))
	rec := get(t, h, "/mensatoshi/history")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestOpenAPIDocument(t *testing.T) {
	rec := get(t, setup(), "/openapi.json")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, "Useful API", doc.Info.Title)
	for _, p := range []string{"/", "/mensatoshi", "/mensatoshi/history", "/mensabeer", "/congressbeer", "/shark", "/teapot", "/openapi.json"} {
		require.Contains(t, doc.Paths, p)
	}
}

func TestReadyz(t *testing.T) {
	srv := newTestServer(stubFeed{price: 1}, stubStock{}, nil)
	h := NewRouter(srv)
	rec := get(t, h, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "READY", rec.Body.String())

	srv.SetReadyCheck(func(context.Context) error { return errors.New("db down") })
	rec = get(t, h, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	code, msg := decodeError(t, rec)
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.NotEmpty(t, msg)
}
