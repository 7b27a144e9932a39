// Package pipeline constructs the service graph and runs the four input
// streams through it. Construction wires every listener before any
// connector subscribes; the run is single-threaded and each source is
// drained to completion in order.
package pipeline

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/booking"
	"main/internal/execution"
	"main/internal/gui"
	"main/internal/history"
	"main/internal/inquiry"
	"main/internal/marketdata"
	"main/internal/model"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/position"
	"main/internal/pricing"
	"main/internal/risk"
	"main/internal/streaming"
)

// Graph is the fully wired pipeline. Services are exported so tests and
// the entry point can inspect final state after a run.
type Graph struct {
	Metrics *obs.Metrics

	Pricing       *pricing.Service
	AlgoStreaming *streaming.AlgoService
	Streaming     *streaming.Service
	GUI           *gui.Service
	MarketData    *marketdata.Service
	AlgoExecution *execution.AlgoService
	Execution     *execution.Service
	Booking       *booking.Service
	Position      *position.Service
	Risk          *risk.Service
	Inquiry       *inquiry.Service

	GUIHistory       *history.Sink[model.PriceTick]
	StreamingHistory *history.Sink[model.PriceStream]
	ExecutionHistory *history.Sink[model.ExecutionOrder]
	PositionHistory  *history.Sink[*model.Position]
	RiskHistory      *history.Sink[model.PV01]
	InquiryHistory   *history.Sink[model.Inquiry]

	sources []source
	writers []*history.Writer
}

type source struct {
	name      string
	subscribe func(ctx context.Context) error
}

// Build creates every service, sink, and connector and wires the listener
// graph. No input is consumed until Run.
func Build(cfg ops.Loaded, metrics *obs.Metrics, rng *rand.Rand) (*Graph, error) {
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}
	g := &Graph{Metrics: metrics}

	g.Pricing = pricing.NewService(metrics)
	g.AlgoStreaming = streaming.NewAlgoService(metrics)
	g.Streaming = streaming.NewService(metrics)
	g.GUI = gui.NewService(cfg.GUI.Throttle(), cfg.GUI.MaxTicks, metrics)
	g.MarketData = marketdata.NewService(metrics)
	g.AlgoExecution = execution.NewAlgoService(cfg.Algo, rng, metrics)
	g.Execution = execution.NewService(metrics)
	g.Booking = booking.NewService(metrics)
	g.Position = position.NewService(metrics)
	g.Risk = risk.NewService(metrics)
	g.Inquiry = inquiry.NewService(metrics)

	if err := g.openSinks(cfg, metrics); err != nil {
		g.Close()
		return nil, err
	}

	// Listener wiring; registration order is dispatch order.
	g.Pricing.AddListener(streaming.NewPricingListener(g.AlgoStreaming))
	g.Pricing.AddListener(gui.NewPricingListener(g.GUI))
	g.AlgoStreaming.AddListener(streaming.NewAlgoListener(g.Streaming))
	g.Streaming.AddListener(g.StreamingHistory)
	g.GUI.AddListener(g.GUIHistory)

	g.MarketData.AddListener(execution.NewBookListener(g.AlgoExecution))
	g.AlgoExecution.AddListener(execution.NewAlgoListener(g.Execution))
	g.Execution.AddListener(g.ExecutionHistory)
	g.Execution.AddListener(booking.NewExecutionListener(g.Booking))

	g.Booking.AddListener(position.NewTradeListener(g.Position))
	g.Position.AddListener(g.PositionHistory)
	g.Position.AddListener(risk.NewPositionListener(g.Risk))
	g.Risk.AddListener(g.RiskHistory)

	g.Inquiry.AddListener(g.InquiryHistory)

	// Source connectors, drained in this order.
	master := cfg.Securities
	prices := pricing.NewFileConnector(g.Pricing, master, filepath.Join(cfg.Input, "prices.txt"), metrics)
	trades := booking.NewFileConnector(g.Booking, master, filepath.Join(cfg.Input, "trades.txt"), metrics)
	books := marketdata.NewFileConnector(g.MarketData, master, filepath.Join(cfg.Input, "marketdata.txt"), metrics)
	inquiries := inquiry.NewConnector(g.Inquiry, master, filepath.Join(cfg.Input, "inquiries.txt"), metrics)

	g.sources = []source{
		{"prices", prices.Subscribe},
		{"trades", trades.Subscribe},
		{"marketdata", books.Subscribe},
		{"inquiries", inquiries.Subscribe},
	}
	return g, nil
}

func (g *Graph) openSinks(cfg ops.Loaded, metrics *obs.Metrics) error {
	newWriter := func(name, header string) (*history.Writer, error) {
		w, err := history.NewWriter(filepath.Join(cfg.Output, name), header)
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		g.writers = append(g.writers, w)
		return w, nil
	}

	guiWriter, err := newWriter("gui.txt", "Price feed (throttled)")
	if err != nil {
		return err
	}
	streamWriter, err := newWriter("streaming.txt", "")
	if err != nil {
		return err
	}
	execWriter, err := newWriter("executions.txt", "")
	if err != nil {
		return err
	}
	positionWriter, err := newWriter("positions.txt", "")
	if err != nil {
		return err
	}
	riskWriter, err := newWriter("risk.txt", "")
	if err != nil {
		return err
	}
	inquiryWriter, err := newWriter("allinquiries.txt", "")
	if err != nil {
		return err
	}

	g.GUIHistory = history.NewSink(guiWriter, obs.StageGUI, metrics,
		func(t model.PriceTick) string { return t.Product.ProductID }, formatGUI)
	g.StreamingHistory = history.NewSink(streamWriter, obs.StageStreaming, metrics,
		func(ps model.PriceStream) string { return ps.Product.ProductID }, formatStream)
	g.ExecutionHistory = history.NewSink(execWriter, obs.StageExecution, metrics,
		func(o model.ExecutionOrder) string { return o.OrderID }, formatExecution)
	g.PositionHistory = history.NewSink(positionWriter, obs.StagePosition, metrics,
		func(p *model.Position) string { return p.Product.ProductID }, formatPosition)
	g.RiskHistory = history.NewSink(riskWriter, obs.StageRisk, metrics,
		func(pv model.PV01) string { return pv.Product.ProductID }, formatRisk(g.Risk, cfg.Sectors))
	g.InquiryHistory = history.NewSink(inquiryWriter, obs.StageInquiry, metrics,
		func(q model.Inquiry) string { return q.InquiryID }, formatInquiry)
	return nil
}

// Run drains every source in order, then flushes the sinks. The first
// source error aborts the run.
func (g *Graph) Run(ctx context.Context) error {
	for _, src := range g.sources {
		logs.Infof("pipeline: draining %s", src.name)
		if err := src.subscribe(ctx); err != nil {
			g.Close()
			return errors.Wrap(err, src.name)
		}
	}
	return g.Close()
}

// Close flushes and closes every sink writer. The first error wins; every
// writer is still closed.
func (g *Graph) Close() error {
	var firstErr error
	for _, w := range g.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	g.writers = nil
	return firstErr
}
