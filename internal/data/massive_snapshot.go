package data

import (
	"context"
	"fmt"
	"strings"
	"time"

	massive "github.com/massive-com/client-go/v2/rest"
	"github.com/massive-com/client-go/v2/rest/models"

	"github.com/contactkeval/option-iv/internal/logger"
)

// snapshotClient is the slice of the Massive SDK this provider uses.
type snapshotClient interface {
	GetTickerSnapshot(ctx context.Context, params *models.GetTickerSnapshotParams, options ...models.RequestOption) (*models.GetTickerSnapshotResponse, error)
	GetPreviousCloseAgg(ctx context.Context, params *models.GetPreviousCloseAggParams, options ...models.RequestOption) (*models.GetPreviousCloseAggResponse, error)
}

// massiveSnapshotProvider prices an underlying at its live price through
// the Massive SDK: last trade, then today's running close, then the
// previous session close. It only answers for today's valuation;
// historical dates fall through to the secondary.
type massiveSnapshotProvider struct {
	client    snapshotClient
	now       func() time.Time
	secondary Provider
}

func NewMassiveSnapshotProvider(apiKey string, secondary Provider) *massiveSnapshotProvider {
	return &massiveSnapshotProvider{
		client:    massive.New(apiKey),
		now:       time.Now,
		secondary: secondary,
	}
}

func (snapshotProv *massiveSnapshotProvider) Name() string { return "massive-snapshot" }

func (snapshotProv *massiveSnapshotProvider) Secondary() Provider {
	return snapshotProv.secondary
}

func (snapshotProv *massiveSnapshotProvider) GetUnderlyingPrice(ctx context.Context, ticker string, asOf time.Time) (float64, error) {
	y, m, d := snapshotProv.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if asOf.Before(today) {
		return 0, fmt.Errorf("%w: live snapshot only serves today's valuation", ErrNoPrice)
	}
	ticker = strings.ToUpper(ticker)

	price, snapErr := snapshotProv.livePrice(ctx, ticker)
	if snapErr == nil {
		return price, nil
	}
	logger.Debugf("snapshot %s unavailable, trying previous close: %v", ticker, snapErr)

	params := &models.GetPreviousCloseAggParams{Ticker: ticker}
	res, err := snapshotProv.client.GetPreviousCloseAgg(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("massive previous close: %w (snapshot: %v)", err, snapErr)
	}
	if res == nil || len(res.Results) == 0 || !(res.Results[0].Close > 0) {
		return 0, fmt.Errorf("%w: no snapshot or previous close for %s", ErrNoPrice, ticker)
	}

	price = res.Results[0].Close
	logger.Tracef("previous close %s=%.4f", ticker, price)
	return price, nil
}

// livePrice reads the ticker snapshot, preferring the last trade over the
// day bar and the day bar over the previous day's.
func (snapshotProv *massiveSnapshotProvider) livePrice(ctx context.Context, ticker string) (float64, error) {
	params := &models.GetTickerSnapshotParams{
		Locale:     models.US,
		MarketType: models.Stocks,
		Ticker:     ticker,
	}
	res, err := snapshotProv.client.GetTickerSnapshot(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("massive ticker snapshot: %w", err)
	}
	if res == nil {
		return 0, fmt.Errorf("%w: empty snapshot for %s", ErrNoPrice, ticker)
	}

	snap := res.Snapshot
	for _, c := range []struct {
		field string
		price float64
	}{
		{"last trade", snap.LastTrade.Price},
		{"day close", snap.Day.Close},
		{"prev day close", snap.PrevDay.Close},
	} {
		if c.price > 0 {
			logger.Tracef("snapshot %s %s=%.4f", c.field, ticker, c.price)
			return c.price, nil
		}
	}
	return 0, fmt.Errorf("%w: snapshot for %s carries no price", ErrNoPrice, ticker)
}
