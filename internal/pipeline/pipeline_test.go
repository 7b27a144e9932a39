package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/codec"
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/obs"
	"main/internal/ops"
)

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func mdRow(cusip string, topBid, spread model.Price) string {
	fields := []string{cusip}
	topAsk := topBid + spread
	for level := model.Price(0); level < 5; level++ {
		fields = append(fields,
			codec.FormatPrice(topBid-2*level), "1000000",
			codec.FormatPrice(topAsk+2*level), "1000000")
	}
	return strings.Join(fields, ",")
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
}

func TestEndToEndRun(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	writeInput(t, in, "prices.txt",
		"CUSIP,Mid,Spread\n"+
			"9128285Q9,99-000,0-002\n"+
			"9128285Q9,99-001,0-003\n"+
			"912810SE9,100-000,0-002\n")
	writeInput(t, in, "trades.txt",
		"CUSIP,TradeID,Price,Quantity,Book,Side\n"+
			"9128285Q9,T1,99-000,1000000,TRSY1,BUY\n"+
			"9128285Q9,T2,100-000,2000000,TRSY2,SELL\n"+
			"9128285Q9,T3,99-000,500000,TRSY1,BUY\n")
	topBid := model.Price(99 * model.TicksPerPoint)
	writeInput(t, in, "marketdata.txt",
		"CUSIP,Bid1,BidQty1,Ask1,AskQty1,Bid2,BidQty2,Ask2,AskQty2,Bid3,BidQty3,Ask3,AskQty3,Bid4,BidQty4,Ask4,AskQty4,Bid5,BidQty5,Ask5,AskQty5\n"+
			mdRow("912810SE9", topBid, 2)+"\n"+
			mdRow("912810SE9", topBid, 10)+"\n")
	writeInput(t, in, "inquiries.txt",
		"InquiryID,CUSIP,Quantity,Side,Price,State\n"+
			"INQ1,9128285Q9,1000000,BUY,99-160,RECEIVED\n")

	cfg := ops.Default()
	cfg.Input = in
	cfg.Output = out
	cfg.GUI = ops.GUIConfig{ThrottleMillis: 1, MaxTicks: 100}

	metrics := obs.NewMetrics()
	graph, err := Build(cfg, metrics, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, graph.Run(context.Background()))

	// Streaming: every price tick derives one two-way stream record.
	streaming := readLines(t, filepath.Join(out, "streaming.txt"))
	assert.Len(t, streaming, 3)
	stream := graph.Streaming.GetData("9128285Q9")
	assert.Equal(t, model.Price(3), stream.Offer.Price-stream.Bid.Price)

	// GUI: header plus one record per tick, all under the cap.
	gui := readLines(t, filepath.Join(out, "gui.txt"))
	assert.Len(t, gui, 1+3)
	assert.Equal(t, 3, graph.GUI.Published())

	// Execution: only the 2-tick book passes the 4-tick gate; the order
	// aggresses the best offer.
	executions := readLines(t, filepath.Join(out, "executions.txt"))
	require.Len(t, executions, 1)
	order := graph.Execution.GetData("912810SE9")
	require.NotEmpty(t, order.OrderID)
	assert.Equal(t, enum.PricingSideBid, order.Side)
	assert.Equal(t, topBid+2, order.Price)

	// Positions: the trade file books -500k on Q9; the synthesized
	// execution trade books the full 2M order size on SE9.
	q9 := graph.Position.GetData("9128285Q9")
	require.NotNil(t, q9)
	assert.Equal(t, model.Quantity(1_500_000), q9.Book("TRSY1"))
	assert.Equal(t, model.Quantity(-2_000_000), q9.Book("TRSY2"))
	assert.Equal(t, model.Quantity(-500_000), q9.Aggregate())

	se9 := graph.Position.GetData("912810SE9")
	require.NotNil(t, se9)
	assert.Equal(t, model.Quantity(2_000_000), se9.Aggregate())

	// Risk: aggregates 1M, -1M, -0.5M accumulate to -0.5 PV01.
	assert.Equal(t, "-0.5", graph.Risk.GetData("9128285Q9").Value.String())
	assert.Equal(t, "2", graph.Risk.GetData("912810SE9").Value.String())

	risk := readLines(t, filepath.Join(out, "risk.txt"))
	assert.Len(t, risk, 2*4, "two records per position event")
	last := risk[len(risk)-1]
	assert.Contains(t, last, "FrontEnd: -0.5")
	assert.Contains(t, last, "LongEnd: 2")

	// Inquiry: three records in state order, final state DONE at par.
	inquiries := readLines(t, filepath.Join(out, "allinquiries.txt"))
	require.Len(t, inquiries, 3)
	for i, state := range []string{"RECEIVED", "QUOTED", "DONE"} {
		assert.Contains(t, inquiries[i], "State: "+state)
	}
	final := graph.Inquiry.GetData("INQ1")
	assert.Equal(t, enum.InquiryDone, final.State)
	assert.Equal(t, model.Price(100*model.TicksPerPoint), final.Price)

	// Positions log: one record per position event with all three books.
	positions := readLines(t, filepath.Join(out, "positions.txt"))
	assert.Len(t, positions, 4)
	assert.Contains(t, positions[2], "Aggregate: -500000")
	assert.Contains(t, positions[2], "TRSY1: 1500000")
	assert.Contains(t, positions[2], "TRSY2: -2000000")
	assert.Contains(t, positions[2], "TRSY3: 0")
}

func TestRunFailsWhenInputMissing(t *testing.T) {
	cfg := ops.Default()
	cfg.Input = t.TempDir()
	cfg.Output = t.TempDir()

	graph, err := Build(cfg, obs.NewMetrics(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	err = graph.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, fmt.Sprint(err), "prices")
}
