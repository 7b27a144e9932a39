// Package datagen writes the four input files the pipeline consumes.
// Prices oscillate tick-by-tick between 99 and 100-31+, market-data
// spreads cycle so roughly a third of the books pass the execution gate,
// and trades rotate over the TRSY books.
package datagen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/codec"
	"main/internal/model"
	"main/internal/ops"
)

// Config sizes the generated files.
type Config struct {
	Dir       string
	Prices    int // price ticks per product
	Books     int // market-data updates per product
	Trades    int // trades per product
	Inquiries int // inquiries per product
	Seed      int64
}

// Generator writes input files for every product in the security master.
type Generator struct {
	cfg    Config
	master *ops.SecurityMaster
	rng    *rand.Rand
}

// New creates a generator.
func New(cfg Config, master *ops.SecurityMaster) *Generator {
	return &Generator{
		cfg:    cfg,
		master: master,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
}

const (
	minMid = model.Price(99 * model.TicksPerPoint)
	maxMid = model.Price(100*model.TicksPerPoint + 31*model.TicksPer32nd + 4)
)

// mdSpreads is the cyclic top-of-book spread in ticks; the 2- and 4-tick
// entries fall inside the default execution gate.
var mdSpreads = []model.Price{2, 4, 6, 8, 6, 4}

// Generate writes prices.txt, trades.txt, marketdata.txt, and
// inquiries.txt under the configured directory.
func (g *Generator) Generate() error {
	if err := os.MkdirAll(g.cfg.Dir, 0o755); err != nil {
		return errors.Wrap(err, "create input directory")
	}
	steps := []struct {
		name  string
		write func(*bufio.Writer) error
	}{
		{"prices.txt", g.writePrices},
		{"trades.txt", g.writeTrades},
		{"marketdata.txt", g.writeMarketData},
		{"inquiries.txt", g.writeInquiries},
	}
	for _, step := range steps {
		if err := g.writeFile(step.name, step.write); err != nil {
			return err
		}
		logs.Infof("datagen: wrote %s", step.name)
	}
	return nil
}

func (g *Generator) writeFile(name string, write func(*bufio.Writer) error) error {
	file, err := os.Create(filepath.Join(g.cfg.Dir, name))
	if err != nil {
		return errors.Wrap(err, "create "+name)
	}
	w := bufio.NewWriter(file)
	if err := write(w); err != nil {
		file.Close()
		return errors.Wrap(err, "write "+name)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return errors.Wrap(err, "flush "+name)
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(err, "close "+name)
	}
	return nil
}

// oscillate walks one tick per step between minMid and maxMid, bouncing
// at the bounds.
func oscillate(step int) model.Price {
	period := int(maxMid - minMid)
	phase := step % (2 * period)
	if phase < period {
		return minMid + model.Price(phase)
	}
	return maxMid - model.Price(phase-period)
}

func (g *Generator) writePrices(w *bufio.Writer) error {
	if _, err := fmt.Fprintln(w, "CUSIP,Mid,Spread"); err != nil {
		return err
	}
	for _, bond := range g.master.Bonds() {
		for i := 0; i < g.cfg.Prices; i++ {
			mid := oscillate(i)
			spread := model.Price(2 + i%3) // 2..4 ticks
			if _, err := fmt.Fprintf(w, "%s,%s,%s\n",
				bond.ProductID, codec.FormatPrice(mid), codec.FormatPrice(spread)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) writeTrades(w *bufio.Writer) error {
	if _, err := fmt.Fprintln(w, "CUSIP,TradeID,Price,Quantity,Book,Side"); err != nil {
		return err
	}
	for _, bond := range g.master.Bonds() {
		for i := 0; i < g.cfg.Trades; i++ {
			price := minMid
			side := "BUY"
			if i%2 == 1 {
				price = model.Price(100 * model.TicksPerPoint)
				side = "SELL"
			}
			qty := (g.rng.Intn(5) + 1) * 1_000_000
			if _, err := fmt.Fprintf(w, "%s,%s_T%d,%s,%d,TRSY%d,%s\n",
				bond.ProductID, bond.ProductID, i+1, codec.FormatPrice(price),
				qty, i%3+1, side); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) writeMarketData(w *bufio.Writer) error {
	if _, err := fmt.Fprintln(w, "CUSIP,Bid1,BidQty1,Ask1,AskQty1,Bid2,BidQty2,Ask2,AskQty2,Bid3,BidQty3,Ask3,AskQty3,Bid4,BidQty4,Ask4,AskQty4,Bid5,BidQty5,Ask5,AskQty5"); err != nil {
		return err
	}
	for _, bond := range g.master.Bonds() {
		for i := 0; i < g.cfg.Books; i++ {
			mid := oscillate(i)
			spread := mdSpreads[i%len(mdSpreads)]
			topBid := mid - spread/2
			topAsk := topBid + spread

			if _, err := fmt.Fprintf(w, "%s", bond.ProductID); err != nil {
				return err
			}
			for level := model.Price(0); level < 5; level++ {
				bid := topBid - 2*level
				ask := topAsk + 2*level
				qty := (int(level) + 1) * 1_000_000
				if _, err := fmt.Fprintf(w, ",%s,%d,%s,%d",
					codec.FormatPrice(bid), qty, codec.FormatPrice(ask), qty); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) writeInquiries(w *bufio.Writer) error {
	if _, err := fmt.Fprintln(w, "InquiryID,CUSIP,Quantity,Side,Price,State"); err != nil {
		return err
	}
	n := 0
	for _, bond := range g.master.Bonds() {
		for i := 0; i < g.cfg.Inquiries; i++ {
			n++
			side := "BUY"
			if i%2 == 1 {
				side = "SELL"
			}
			qty := (g.rng.Intn(5) + 1) * 1_000_000
			if _, err := fmt.Fprintf(w, "INQ%d,%s,%d,%s,%s,RECEIVED\n",
				n, bond.ProductID, qty, side, codec.FormatPrice(oscillate(i))); err != nil {
				return err
			}
		}
	}
	return nil
}
