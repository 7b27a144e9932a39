package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/soa"
)

type positionRecorder struct {
	soa.BaseListener[*model.Position]
	aggregates []model.Quantity
}

func (r *positionRecorder) ProcessAdd(pos *model.Position) {
	r.aggregates = append(r.aggregates, pos.Aggregate())
}

func TestAddTradeBuildsLedger(t *testing.T) {
	svc := NewService(nil)
	rec := &positionRecorder{}
	svc.AddListener(rec)

	bond := model.Bond{ProductID: "9128285Q9"}
	svc.AddTrade(model.Trade{Product: bond, TradeID: "T1", Book: "TRSY1", Quantity: 1_000_000, Side: enum.SideBuy})
	svc.AddTrade(model.Trade{Product: bond, TradeID: "T2", Book: "TRSY2", Quantity: 2_000_000, Side: enum.SideSell})
	svc.AddTrade(model.Trade{Product: bond, TradeID: "T3", Book: "TRSY1", Quantity: 500_000, Side: enum.SideBuy})

	pos, ok := svc.Get("9128285Q9")
	require.True(t, ok)
	assert.Equal(t, model.Quantity(1_500_000), pos.Book("TRSY1"))
	assert.Equal(t, model.Quantity(-2_000_000), pos.Book("TRSY2"))
	assert.Equal(t, model.Quantity(-500_000), pos.Aggregate())

	// Every trade republishes the full position.
	assert.Equal(t, []model.Quantity{1_000_000, -1_000_000, -500_000}, rec.aggregates)
}

func TestPositionsAreSeparatePerProduct(t *testing.T) {
	svc := NewService(nil)
	a := model.Bond{ProductID: "9128285Q9"}
	b := model.Bond{ProductID: "912810SE9"}

	svc.AddTrade(model.Trade{Product: a, TradeID: "T1", Book: "TRSY1", Quantity: 1_000_000, Side: enum.SideBuy})
	svc.AddTrade(model.Trade{Product: b, TradeID: "T2", Book: "TRSY1", Quantity: 3_000_000, Side: enum.SideSell})

	assert.Equal(t, model.Quantity(1_000_000), svc.GetData("9128285Q9").Aggregate())
	assert.Equal(t, model.Quantity(-3_000_000), svc.GetData("912810SE9").Aggregate())
	assert.Nil(t, svc.GetData("missing"))
}
