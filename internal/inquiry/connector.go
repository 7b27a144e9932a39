package inquiry

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

// Connector is both sides of the inquiry boundary: Subscribe streams
// inquiries.txt into the service, and Publish carries quotes out to the
// customer, whose acceptance comes back as a QUOTED entry.
type Connector struct {
	service *Service
	master  *ops.SecurityMaster
	path    string
	metrics *obs.Metrics
}

// NewConnector creates a connector reading from path and wires it to the
// service for the quote loop.
func NewConnector(service *Service, master *ops.SecurityMaster, path string, metrics *obs.Metrics) *Connector {
	c := &Connector{
		service: service,
		master:  master,
		path:    path,
		metrics: metrics,
	}
	service.SetConnector(c)
	return c
}

// Publish sends a quote to the customer. The simulated customer accepts
// immediately: the inquiry returns with state QUOTED.
func (c *Connector) Publish(q model.Inquiry) {
	q.State = enum.InquiryQuoted
	c.service.OnMessage(q)
}

// Subscribe drives every well-formed inquiry into the service. Rows are
// InquiryID, CUSIP, Quantity, Side, Price, State.
func (c *Connector) Subscribe(ctx context.Context) error {
	return codec.ScanCSV(ctx, c.path, func(fields []string) error {
		q, ok := c.parse(fields)
		if !ok {
			c.metrics.IncSkipped(obs.StageInquiry)
			return nil
		}
		c.service.OnMessage(q)
		return nil
	})
}

func (c *Connector) parse(fields []string) (model.Inquiry, bool) {
	if len(fields) != 6 {
		logs.Warnf("inquiries: row has %d fields, want 6", len(fields))
		return model.Inquiry{}, false
	}
	product, ok := c.master.Lookup(fields[1])
	if !ok {
		logs.Warnf("inquiries: unknown product %s", fields[1])
		return model.Inquiry{}, false
	}
	qty, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil || qty <= 0 {
		logs.Warnf("inquiries: bad quantity %q", fields[2])
		return model.Inquiry{}, false
	}
	price, err := codec.ParsePrice(fields[4])
	if err != nil {
		logs.Warnf("inquiries: %+v", err)
		return model.Inquiry{}, false
	}
	state, ok := enum.ParseInquiryState(fields[5])
	if !ok {
		logs.Warnf("inquiries: unknown state %q", fields[5])
		return model.Inquiry{}, false
	}
	return model.Inquiry{
		InquiryID: fields[0],
		Product:   product,
		Side:      enum.ParseSide(fields[3]),
		Quantity:  model.Quantity(qty),
		Price:     price,
		State:     state,
	}, true
}
