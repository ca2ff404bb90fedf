package vrm_normalizer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessBatchAllSucceed(t *testing.T) {
	var calls int32
	items := make([]BatchItem, 5)
	for i := range items {
		items[i] = BatchItem{
			Path: "file",
			Process: func(ctx context.Context) error {
				atomic.AddInt32(&calls, 1)
				return nil
			},
		}
	}

	errs := ProcessBatch(context.Background(), items, 2)
	assert.Len(t, errs, 5)
	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestProcessBatchCollectsPerItemErrors(t *testing.T) {
	boom := errors.New("boom")
	items := []BatchItem{
		{Path: "ok", Process: func(ctx context.Context) error { return nil }},
		{Path: "bad", Process: func(ctx context.Context) error { return boom }},
	}

	errs := ProcessBatch(context.Background(), items, 2)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], boom)
}

func TestProcessBatchDefaultsConcurrency(t *testing.T) {
	items := []BatchItem{
		{Path: "a", Process: func(ctx context.Context) error { return nil }},
	}
	errs := ProcessBatch(context.Background(), items, 0)
	assert.Len(t, errs, 1)
	assert.NoError(t, errs[0])
}
