package pricing

import (
	"context"

	"github.com/yanun0323/logs"

	"main/internal/codec"
	"main/internal/model"
	"main/internal/obs"
	"main/internal/ops"
)

// FileConnector streams prices.txt into the pricing service. Rows are
// CUSIP, Mid, Spread with fractional-32nd prices.
type FileConnector struct {
	service *Service
	master  *ops.SecurityMaster
	path    string
	metrics *obs.Metrics
}

// NewFileConnector creates a connector reading from path.
func NewFileConnector(service *Service, master *ops.SecurityMaster, path string, metrics *obs.Metrics) *FileConnector {
	return &FileConnector{
		service: service,
		master:  master,
		path:    path,
		metrics: metrics,
	}
}

// Publish is a no-op: this connector is source-side only.
func (c *FileConnector) Publish(model.PriceTick) {}

// Subscribe drives every well-formed row into the service. Malformed rows
// and unknown products are skipped with a warning.
func (c *FileConnector) Subscribe(ctx context.Context) error {
	return codec.ScanCSV(ctx, c.path, func(fields []string) error {
		tick, ok := c.parse(fields)
		if !ok {
			c.metrics.IncSkipped(obs.StagePricing)
			return nil
		}
		c.service.OnMessage(tick)
		return nil
	})
}

func (c *FileConnector) parse(fields []string) (model.PriceTick, bool) {
	if len(fields) != 3 {
		logs.Warnf("prices: row has %d fields, want 3", len(fields))
		return model.PriceTick{}, false
	}
	product, ok := c.master.Lookup(fields[0])
	if !ok {
		logs.Warnf("prices: unknown product %s", fields[0])
		return model.PriceTick{}, false
	}
	mid, err := codec.ParsePrice(fields[1])
	if err != nil {
		logs.Warnf("prices: %+v", err)
		return model.PriceTick{}, false
	}
	spread, err := codec.ParsePrice(fields[2])
	if err != nil {
		logs.Warnf("prices: %+v", err)
		return model.PriceTick{}, false
	}
	if mid <= 0 || spread < 0 {
		logs.Warnf("prices: out-of-range tick for %s", fields[0])
		return model.PriceTick{}, false
	}
	return model.PriceTick{Product: product, Mid: mid, BidOfferSpread: spread}, true
}
