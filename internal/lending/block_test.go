package lending

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetBlockByTime(t *testing.T) {
	genesis := int64(1603366002)

	block, err := GetBlockByTime(context.Background(), 15, genesis, time.Unix(genesis, 0))
	assert.Nil(t, err)
	assert.Equal(t, int64(0), block)

	block, err = GetBlockByTime(context.Background(), 15, genesis, time.Unix(genesis+150, 0))
	assert.Nil(t, err)
	assert.Equal(t, int64(10), block)

	_, err = GetBlockByTime(context.Background(), 0, genesis, time.Now())
	assert.NotNil(t, err)

	_, err = GetBlockByTime(context.Background(), 15, genesis, time.Unix(genesis-1, 0))
	assert.NotNil(t, err)
}

func TestCurrentBlock(t *testing.T) {
	currentBlock, err := CurrentBlock(context.Background(), 15, 1603366002)
	if err != nil {
		t.Error(err)
	}

	t.Log("currentBlock:", currentBlock)
}
