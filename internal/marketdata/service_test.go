package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"main/internal/model"
	"main/internal/model/enum"
)

func testBook(productID string) model.OrderBook {
	bond := model.Bond{ProductID: productID}
	return model.OrderBook{
		Product: bond,
		Bids: []model.Order{
			{Price: 25342, Quantity: 1_000_000, Side: enum.PricingSideBid},
			{Price: 25340, Quantity: 2_000_000, Side: enum.PricingSideBid},
			{Price: 25340, Quantity: 3_000_000, Side: enum.PricingSideBid},
			{Price: 25338, Quantity: 4_000_000, Side: enum.PricingSideBid},
			{Price: 25336, Quantity: 5_000_000, Side: enum.PricingSideBid},
		},
		Offers: []model.Order{
			{Price: 25346, Quantity: 1_000_000, Side: enum.PricingSideOffer},
			{Price: 25348, Quantity: 2_000_000, Side: enum.PricingSideOffer},
			{Price: 25348, Quantity: 3_000_000, Side: enum.PricingSideOffer},
			{Price: 25348, Quantity: 4_000_000, Side: enum.PricingSideOffer},
			{Price: 25352, Quantity: 5_000_000, Side: enum.PricingSideOffer},
		},
	}
}

func TestGetBestBidOffer(t *testing.T) {
	svc := NewService(nil)
	svc.OnMessage(testBook("9128285Q9"))

	best := svc.GetBestBidOffer("9128285Q9")
	assert.Equal(t, model.Price(25342), best.Bid.Price)
	assert.Equal(t, model.Price(25346), best.Offer.Price)

	empty := svc.GetBestBidOffer("missing")
	assert.Zero(t, empty.Bid.Price)
	assert.Zero(t, empty.Offer.Price)
}

func TestAggregateDepthCollapsesSamePriceRuns(t *testing.T) {
	svc := NewService(nil)
	svc.OnMessage(testBook("9128285Q9"))

	agg := svc.AggregateDepth("9128285Q9")
	assert.Equal(t, []model.Order{
		{Price: 25342, Quantity: 1_000_000, Side: enum.PricingSideBid},
		{Price: 25340, Quantity: 5_000_000, Side: enum.PricingSideBid},
		{Price: 25338, Quantity: 4_000_000, Side: enum.PricingSideBid},
		{Price: 25336, Quantity: 5_000_000, Side: enum.PricingSideBid},
	}, agg.Bids)
	assert.Equal(t, []model.Order{
		{Price: 25346, Quantity: 1_000_000, Side: enum.PricingSideOffer},
		{Price: 25348, Quantity: 9_000_000, Side: enum.PricingSideOffer},
		{Price: 25352, Quantity: 5_000_000, Side: enum.PricingSideOffer},
	}, agg.Offers)
}

func TestAggregateDepthMissingProduct(t *testing.T) {
	svc := NewService(nil)
	agg := svc.AggregateDepth("missing")
	assert.Nil(t, agg.Bids)
	assert.Nil(t, agg.Offers)
}

func TestOnMessageOverwritesByProduct(t *testing.T) {
	svc := NewService(nil)
	svc.OnMessage(testBook("9128285Q9"))

	updated := testBook("9128285Q9")
	updated.Bids[0].Price = 25344
	svc.OnMessage(updated)

	assert.Equal(t, model.Price(25344), svc.GetData("9128285Q9").Bids[0].Price)
}
