package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeFromEpoch(t *testing.T) {
	ts := TimeFromEpoch(1700000000)
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), *ts)
	assert.Equal(t, time.UTC, ts.Location())
}

func TestTimeFromEpochAbsent(t *testing.T) {
	assert.Nil(t, TimeFromEpoch(0))
	assert.Nil(t, TimeFromEpoch(-1))
}
