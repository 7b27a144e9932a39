package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/soa"
)

type orderRecorder struct {
	soa.BaseListener[model.ExecutionOrder]
	events []model.ExecutionOrder
}

func (r *orderRecorder) ProcessAdd(o model.ExecutionOrder) {
	r.events = append(r.events, o)
}

func TestExecuteOrderKeysOnProduct(t *testing.T) {
	svc := NewService(nil)
	rec := &orderRecorder{}
	svc.AddListener(rec)

	bond := model.Bond{ProductID: "9128285Q9"}
	first := model.ExecutionOrder{Product: bond, OrderID: "1-42", Side: enum.PricingSideBid}
	second := model.ExecutionOrder{Product: bond, OrderID: "2-77", Side: enum.PricingSideOffer}

	svc.ExecuteOrder(first, enum.MarketBrokerTec)
	svc.ExecuteOrder(second, enum.MarketCME)

	require.Len(t, rec.events, 2)
	// One live order per product: the second overwrites the first.
	assert.Equal(t, "2-77", svc.GetData("9128285Q9").OrderID)
	_, ok := svc.Get("missing")
	assert.False(t, ok)
}
