package lock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleKey(t *testing.T) {
	id := uuid.MustParse("3f1c2a8e-7b1d-4b7e-9a55-0c2e6f1d9b10")
	assert.Equal(t, "lock:sale:3f1c2a8e-7b1d-4b7e-9a55-0c2e6f1d9b10", SaleKey(id))
}

func TestNopLocker(t *testing.T) {
	release, err := NopLocker{}.Acquire(context.Background(), "lock:sale:any")
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}
