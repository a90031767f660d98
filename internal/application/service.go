package application

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"useful-api/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	// MensaStewPriceEUR is what a Mensa stew costs.
	MensaStewPriceEUR = 1.20
	// CongressBeerSatoshi is the price of one congress beer.
	CongressBeerSatoshi = 69

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type MensaQuote struct {
	Satoshi int64
	Message string
}

type BeerQuote struct {
	Beers   decimal.Decimal
	Message string
}

type CongressBeers struct {
	Beers   int64
	Message string
}

type SharkReport struct {
	Stock   domain.SharkStock
	Message string
}

type Service struct {
	prices  PriceSource
	stock   StockProvider
	history HistoryRepo
}

func NewService(prices PriceSource, stock StockProvider, history HistoryRepo) *Service {
	if history == nil {
		history = NoopHistory{}
	}
	return &Service{prices: prices, stock: stock, history: history}
}

func Hello() string { return "Hello, World!" }

// Mensatoshi prices a Mensa stew in satoshi using the cached BTC price.
func (s *Service) Mensatoshi(ctx context.Context) (MensaQuote, error) {
	sat, err := s.mensaSatoshi(ctx)
	if err != nil {
		return MensaQuote{}, err
	}
	return MensaQuote{
		Satoshi: sat,
		Message: fmt.Sprintf("Der Mensa-Eintopf kostet aktuell %d Satoshi.", sat),
	}, nil
}

// MensaBeer converts the current stew price into congress beers, rounded to
// two decimals.
func (s *Service) MensaBeer(ctx context.Context) (BeerQuote, error) {
	sat, err := s.mensaSatoshi(ctx)
	if err != nil {
		return BeerQuote{}, err
	}
	beers := decimal.NewFromInt(sat).Div(decimal.NewFromInt(CongressBeerSatoshi)).Round(2)
	return BeerQuote{
		Beers:   beers,
		Message: fmt.Sprintf("Für einen Mensa-Eintopf bekommt man aktuell %s Congressbeers.", beers.String()),
	}, nil
}

func (s *Service) mensaSatoshi(ctx context.Context) (int64, error) {
	p, err := s.prices.Get(ctx)
	if err != nil {
		return 0, err
	}
	return RoundSatoshi(MensaStewPriceEUR, p.Value), nil
}

// RoundSatoshi multiplies a EUR amount by a satoshi-per-EUR price and rounds
// half away from zero.
func RoundSatoshi(eur, satoshiPerEUR float64) int64 {
	return decimal.NewFromFloat(eur).Mul(decimal.NewFromFloat(satoshiPerEUR)).Round(0).IntPart()
}

// CongressBeer tells how many whole congress beers an amount of satoshi buys.
func (s *Service) CongressBeer(satoshi float64) (CongressBeers, error) {
	if math.IsNaN(satoshi) || math.IsInf(satoshi, 0) {
		return CongressBeers{}, fmt.Errorf("%w: satoshi must be a finite number", ErrBadRequest)
	}
	beers := saturateInt64(decimal.NewFromFloat(satoshi).Div(decimal.NewFromInt(CongressBeerSatoshi)).Floor())
	return CongressBeers{
		Beers:   beers,
		Message: fmt.Sprintf("%s Satoshi entspricht %d Congressbeers.", strconv.FormatFloat(satoshi, 'f', -1, 64), beers),
	}, nil
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// saturateInt64 clamps d to the int64 range instead of wrapping.
func saturateInt64(d decimal.Decimal) int64 {
	switch {
	case d.GreaterThan(maxInt64):
		return math.MaxInt64
	case d.LessThan(minInt64):
		return math.MinInt64
	default:
		return d.IntPart()
	}
}

func (s *Service) Shark(ctx context.Context) (SharkReport, error) {
	st, err := s.stock.SharkStock(ctx)
	if err != nil {
		return SharkReport{}, err
	}
	return SharkReport{
		Stock: st,
		Message: fmt.Sprintf("Ikea currently has %d BLÅHAJ, %d smol BLÅHAJ and %d whales in stock",
			st.Beeghaj, st.Smolhaj, st.Whale),
	}, nil
}

// PriceHistory returns the most recent recorded snapshots, newest first.
func (s *Service) PriceHistory(ctx context.Context, limit int) ([]domain.PriceSnapshot, error) {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit < 0 || limit > MaxHistoryLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrBadRequest, MaxHistoryLimit)
	}
	return s.history.Recent(ctx, limit)
}
