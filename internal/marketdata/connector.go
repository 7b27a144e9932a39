package marketdata

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

const depthLevels = 5

// FileConnector streams marketdata.txt into the market-data service. Rows
// are CUSIP followed by five (Bid, BidQty, Ask, AskQty) level groups, best
// levels first.
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
func (c *FileConnector) Publish(model.OrderBook) {}

// Subscribe drives every well-formed book into the service.
func (c *FileConnector) Subscribe(ctx context.Context) error {
	return codec.ScanCSV(ctx, c.path, func(fields []string) error {
		book, ok := c.parse(fields)
		if !ok {
			c.metrics.IncSkipped(obs.StageMarketData)
			return nil
		}
		c.service.OnMessage(book)
		return nil
	})
}

func (c *FileConnector) parse(fields []string) (model.OrderBook, bool) {
	if len(fields) != 1+4*depthLevels {
		logs.Warnf("marketdata: row has %d fields, want %d", len(fields), 1+4*depthLevels)
		return model.OrderBook{}, false
	}
	product, ok := c.master.Lookup(fields[0])
	if !ok {
		logs.Warnf("marketdata: unknown product %s", fields[0])
		return model.OrderBook{}, false
	}

	book := model.OrderBook{
		Product: product,
		Bids:    make([]model.Order, 0, depthLevels),
		Offers:  make([]model.Order, 0, depthLevels),
	}
	for level := 0; level < depthLevels; level++ {
		group := fields[1+4*level : 1+4*(level+1)]
		bid, ok := parseOrder(group[0], group[1], enum.PricingSideBid)
		if !ok {
			return model.OrderBook{}, false
		}
		offer, ok := parseOrder(group[2], group[3], enum.PricingSideOffer)
		if !ok {
			return model.OrderBook{}, false
		}
		book.Bids = append(book.Bids, bid)
		book.Offers = append(book.Offers, offer)
	}
	return book, true
}

func parseOrder(priceText, qtyText string, side enum.PricingSide) (model.Order, bool) {
	price, err := codec.ParsePrice(priceText)
	if err != nil {
		logs.Warnf("marketdata: %+v", err)
		return model.Order{}, false
	}
	qty, err := strconv.ParseInt(qtyText, 10, 64)
	if err != nil || qty <= 0 {
		logs.Warnf("marketdata: bad quantity %q", qtyText)
		return model.Order{}, false
	}
	return model.Order{Price: price, Quantity: model.Quantity(qty), Side: side}, true
}
