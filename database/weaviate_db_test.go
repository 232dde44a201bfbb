package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-rag-be/types"
)

func makeRecords(n int) []types.VectorRecord {
	records := make([]types.VectorRecord, n)
	for i := range records {
		records[i] = types.VectorRecord{
			ID:     fmt.Sprintf("doc.pdf_%d", i),
			Values: []float32{float32(i)},
		}
	}
	return records
}

func TestSplitBatches(t *testing.T) {
	batches := SplitBatches(makeRecords(250), 100)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[1], 100)
	assert.Len(t, batches[2], 50)

	// Order preserved across batch boundaries
	assert.Equal(t, "doc.pdf_0", batches[0][0].ID)
	assert.Equal(t, "doc.pdf_99", batches[0][99].ID)
	assert.Equal(t, "doc.pdf_100", batches[1][0].ID)
	assert.Equal(t, "doc.pdf_249", batches[2][49].ID)
}

func TestSplitBatchesExactMultiple(t *testing.T) {
	batches := SplitBatches(makeRecords(200), 100)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[1], 100)
}

func TestSplitBatchesSmallerThanSize(t *testing.T) {
	batches := SplitBatches(makeRecords(3), 100)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 3)
}

func TestSplitBatchesEmpty(t *testing.T) {
	assert.Nil(t, SplitBatches(nil, 100))
	assert.Nil(t, SplitBatches(makeRecords(5), 0))
}
