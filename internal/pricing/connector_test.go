package pricing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/ops"
)

func TestSubscribeSkipsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.txt")
	content := "CUSIP,Mid,Spread\n" +
		"9128285Q9,99-000,0-002\n" +
		"UNKNOWN99,99-000,0-002\n" +
		"9128285Q9,not-a-price,0-002\n" +
		"9128285Q9,99-000\n" +
		"912810SE9,100-155,0-00+\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	svc := NewService(nil)
	conn := NewFileConnector(svc, ops.Default().Securities, path, nil)
	require.NoError(t, conn.Subscribe(context.Background()))

	tick, ok := svc.Get("9128285Q9")
	require.True(t, ok)
	assert.Equal(t, model.Price(99*model.TicksPerPoint), tick.Mid)
	assert.Equal(t, model.Price(2), tick.BidOfferSpread)

	tick, ok = svc.Get("912810SE9")
	require.True(t, ok)
	assert.Equal(t, model.Price(100*model.TicksPerPoint+15*model.TicksPer32nd+5), tick.Mid)
	assert.Equal(t, model.Price(4), tick.BidOfferSpread)

	_, ok = svc.Get("UNKNOWN99")
	assert.False(t, ok)
}

func TestSubscribeMissingFile(t *testing.T) {
	svc := NewService(nil)
	conn := NewFileConnector(svc, ops.Default().Securities, filepath.Join(t.TempDir(), "absent.txt"), nil)
	require.Error(t, conn.Subscribe(context.Background()))
}
