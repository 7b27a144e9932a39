package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/soa"
)

type tradeRecorder struct {
	soa.BaseListener[model.Trade]
	events []model.Trade
}

func (r *tradeRecorder) ProcessAdd(trade model.Trade) {
	r.events = append(r.events, trade)
}

func TestBookTradeKeysOnTradeID(t *testing.T) {
	svc := NewService(nil)
	rec := &tradeRecorder{}
	svc.AddListener(rec)

	bond := model.Bond{ProductID: "9128285Q9"}
	svc.BookTrade(model.Trade{Product: bond, TradeID: "T1", Quantity: 1_000_000, Side: enum.SideBuy})
	svc.BookTrade(model.Trade{Product: bond, TradeID: "T2", Quantity: 2_000_000, Side: enum.SideSell})

	require.Len(t, rec.events, 2)
	assert.Equal(t, model.Quantity(1_000_000), svc.GetData("T1").Quantity)
	assert.Equal(t, model.Quantity(2_000_000), svc.GetData("T2").Quantity)
}

func TestExecutionListenerSynthesizesTrades(t *testing.T) {
	svc := NewService(nil)
	rec := &tradeRecorder{}
	svc.AddListener(rec)
	listener := NewExecutionListener(svc)

	bond := model.Bond{ProductID: "9128285Q9"}
	listener.ProcessAdd(model.ExecutionOrder{
		Product:         bond,
		OrderID:         "1-42",
		Side:            enum.PricingSideBid,
		Price:           25600,
		VisibleQuantity: 1_000_000,
		HiddenQuantity:  1_000_000,
	})
	listener.ProcessAdd(model.ExecutionOrder{
		Product:         bond,
		OrderID:         "2-77",
		Side:            enum.PricingSideOffer,
		Price:           25600,
		VisibleQuantity: 1_000_000,
		HiddenQuantity:  1_000_000,
	})
	listener.ProcessAdd(model.ExecutionOrder{
		Product:         bond,
		OrderID:         "3-15",
		Side:            enum.PricingSideBid,
		Price:           25600,
		VisibleQuantity: 2_000_000,
		HiddenQuantity:  4_000_000,
	})

	require.Len(t, rec.events, 3)

	first := rec.events[0]
	assert.Equal(t, "ETrade1", first.TradeID)
	assert.Equal(t, enum.SideBuy, first.Side, "BID order books as a buy")
	assert.Equal(t, model.Quantity(2_000_000), first.Quantity, "full order size is booked")

	second := rec.events[1]
	assert.Equal(t, "ETrade2", second.TradeID)
	assert.Equal(t, enum.SideSell, second.Side)

	third := rec.events[2]
	assert.Equal(t, model.Quantity(6_000_000), third.Quantity)

	books := []string{first.Book, second.Book, third.Book}
	assert.ElementsMatch(t, []string{"TRSY1", "TRSY2", "TRSY3"}, books, "books rotate over all three ledgers")
}
