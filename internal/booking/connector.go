package booking

import (
	"context"
	"strconv"

	"github.com/yanun0323/logs"

	"main/internal/codec"
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/obs"
	"main/internal/ops"
)

// FileConnector streams trades.txt into the booking service. Rows are
// CUSIP, TradeID, Price, Quantity, Book, Side.
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
func (c *FileConnector) Publish(model.Trade) {}

// Subscribe drives every well-formed trade into the service.
func (c *FileConnector) Subscribe(ctx context.Context) error {
	return codec.ScanCSV(ctx, c.path, func(fields []string) error {
		trade, ok := c.parse(fields)
		if !ok {
			c.metrics.IncSkipped(obs.StageTradeBooking)
			return nil
		}
		c.service.BookTrade(trade)
		return nil
	})
}

func (c *FileConnector) parse(fields []string) (model.Trade, bool) {
	if len(fields) != 6 {
		logs.Warnf("trades: row has %d fields, want 6", len(fields))
		return model.Trade{}, false
	}
	product, ok := c.master.Lookup(fields[0])
	if !ok {
		logs.Warnf("trades: unknown product %s", fields[0])
		return model.Trade{}, false
	}
	price, err := codec.ParsePrice(fields[2])
	if err != nil {
		logs.Warnf("trades: %+v", err)
		return model.Trade{}, false
	}
	qty, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil || qty <= 0 {
		logs.Warnf("trades: bad quantity %q", fields[3])
		return model.Trade{}, false
	}
	return model.Trade{
		Product:  product,
		TradeID:  fields[1],
		Price:    price,
		Book:     fields[4],
		Quantity: model.Quantity(qty),
		Side:     enum.ParseSide(fields[5]),
	}, true
}
