package pipeline

import (
	"strconv"

	"main/internal/model"
	"main/internal/risk"
)

// positionBooks are the ledger books reported in positions.txt.
var positionBooks = []string{"TRSY1", "TRSY2", "TRSY3"}

func formatGUI(tick model.PriceTick) [][]string {
	return [][]string{{
		"ProductID: " + tick.Product.ProductID,
		"Mid: " + tick.Mid.String(),
		"Spread: " + tick.BidOfferSpread.String(),
	}}
}

func formatStream(ps model.PriceStream) [][]string {
	return [][]string{{
		"ProductID: " + ps.Product.ProductID,
		"Bid: " + ps.Bid.Price.String(),
		"BidVisibleQty: " + strconv.FormatInt(int64(ps.Bid.VisibleQuantity), 10),
		"BidHiddenQty: " + strconv.FormatInt(int64(ps.Bid.HiddenQuantity), 10),
		"Offer: " + ps.Offer.Price.String(),
		"OfferVisibleQty: " + strconv.FormatInt(int64(ps.Offer.VisibleQuantity), 10),
		"OfferHiddenQty: " + strconv.FormatInt(int64(ps.Offer.HiddenQuantity), 10),
	}}
}

func formatExecution(order model.ExecutionOrder) [][]string {
	return [][]string{{
		"OrderID: " + order.OrderID,
		"ProductID: " + order.Product.ProductID,
		"Side: " + order.Side.String(),
		"Price: " + order.Price.String(),
		"VisibleQty: " + strconv.FormatInt(int64(order.VisibleQuantity), 10),
		"HiddenQty: " + strconv.FormatInt(int64(order.HiddenQuantity), 10),
		"ParentOrderID: " + order.ParentOrderID,
		"IsChildOrder: " + strconv.FormatBool(order.IsChildOrder),
	}}
}

func formatPosition(pos *model.Position) [][]string {
	fields := []string{
		"ProductID: " + pos.Product.ProductID,
		"Aggregate: " + strconv.FormatInt(int64(pos.Aggregate()), 10),
	}
	for _, book := range positionBooks {
		fields = append(fields, book+": "+strconv.FormatInt(int64(pos.Book(book)), 10))
	}
	return [][]string{fields}
}

func formatInquiry(q model.Inquiry) [][]string {
	return [][]string{{
		"InquiryID: " + q.InquiryID,
		"ProductID: " + q.Product.ProductID,
		"State: " + q.State.String(),
		"Side: " + q.Side.String(),
		"Price: " + q.Price.String(),
		"Quantity: " + strconv.FormatInt(int64(q.Quantity), 10),
	}}
}

// formatRisk writes two records per event: the per-security PV01, then
// the sector aggregates recomputed against the current risk store.
func formatRisk(service *risk.Service, sectors []model.BucketedSector) func(model.PV01) [][]string {
	return func(pv model.PV01) [][]string {
		security := []string{
			"ProductID: " + pv.Product.ProductID,
			"PV01: " + pv.Value.String(),
			"Quantity: " + strconv.FormatInt(int64(pv.Quantity), 10),
		}
		buckets := make([]string, 0, len(sectors))
		for _, sector := range sectors {
			bucketed := service.GetBucketedRisk(sector)
			buckets = append(buckets, sector.Name+": "+bucketed.Value.String())
		}
		return [][]string{security, buckets}
	}
}
