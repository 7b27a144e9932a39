package inquiry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/ops"
	"main/internal/soa"
)

type stateRecorder struct {
	soa.BaseListener[model.Inquiry]
	events []model.Inquiry
}

func (r *stateRecorder) ProcessAdd(q model.Inquiry) {
	r.events = append(r.events, q)
}

func newTestService(t *testing.T, rows string) (*Service, *stateRecorder, *Connector) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inquiries.txt")
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))

	svc := NewService(nil)
	rec := &stateRecorder{}
	svc.AddListener(rec)
	conn := NewConnector(svc, ops.Default().Securities, path, nil)
	return svc, rec, conn
}

func TestReceivedInquiryRunsToDone(t *testing.T) {
	svc, rec, conn := newTestService(t,
		"InquiryID,CUSIP,Quantity,Side,Price,State\nINQ1,9128285Q9,1000000,BUY,99-160,RECEIVED\n")

	require.NoError(t, conn.Subscribe(context.Background()))

	require.Len(t, rec.events, 3)
	assert.Equal(t, enum.InquiryReceived, rec.events[0].State)
	assert.Equal(t, enum.InquiryQuoted, rec.events[1].State)
	assert.Equal(t, enum.InquiryDone, rec.events[2].State)

	final := svc.GetData("INQ1")
	assert.Equal(t, enum.InquiryDone, final.State)
	assert.Equal(t, QuotePrice, final.Price, "quoted at par")
	assert.Equal(t, model.Quantity(1_000_000), final.Quantity)
}

func TestQuotePreservesInquiryFields(t *testing.T) {
	svc, rec, conn := newTestService(t,
		"InquiryID,CUSIP,Quantity,Side,Price,State\nINQ7,912810SE9,3000000,SELL,99-000,RECEIVED\n")

	require.NoError(t, conn.Subscribe(context.Background()))

	require.Len(t, rec.events, 3)
	for _, event := range rec.events {
		assert.Equal(t, "INQ7", event.InquiryID)
		assert.Equal(t, "912810SE9", event.Product.ProductID)
		assert.Equal(t, enum.SideSell, event.Side)
	}
	// The customer's own price is published with the RECEIVED record;
	// the quote replaces it afterwards.
	assert.Equal(t, model.Price(99*model.TicksPerPoint), rec.events[0].Price)
	assert.Equal(t, QuotePrice, rec.events[1].Price)
	assert.Equal(t, svc.GetData("INQ7"), rec.events[2])
}

func TestMalformedRowsAreSkipped(t *testing.T) {
	_, rec, conn := newTestService(t,
		"InquiryID,CUSIP,Quantity,Side,Price,State\n"+
			"INQ1,UNKNOWN99,1000000,BUY,99-160,RECEIVED\n"+
			"INQ2,9128285Q9,notanumber,BUY,99-160,RECEIVED\n"+
			"INQ3,9128285Q9,1000000,BUY,99-160,NOT_A_STATE\n"+
			"INQ4,9128285Q9,1000000,BUY,99-160,RECEIVED\n")

	require.NoError(t, conn.Subscribe(context.Background()))

	require.Len(t, rec.events, 3, "only INQ4 is accepted, with its full loop")
	for _, event := range rec.events {
		assert.Equal(t, "INQ4", event.InquiryID)
	}
}

func TestTerminalStatesAreStoredWithoutTransitions(t *testing.T) {
	svc, rec, conn := newTestService(t,
		"InquiryID,CUSIP,Quantity,Side,Price,State\nINQ9,9128285Q9,1000000,BUY,99-160,REJECTED\n")

	require.NoError(t, conn.Subscribe(context.Background()))

	require.Len(t, rec.events, 1)
	assert.Equal(t, enum.InquiryRejected, svc.GetData("INQ9").State)
}
