package env

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsWhenUnset(t *testing.T) {
	assert.Equal(t, "fallback", String("CLAIMS_TEST_UNSET", "fallback"))

	d, err := Duration("CLAIMS_TEST_UNSET", time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)

	dec, err := Decimal("CLAIMS_TEST_UNSET", decimal.NewFromInt(1250))
	require.NoError(t, err)
	assert.True(t, dec.Equal(decimal.NewFromInt(1250)))
}

func TestParsesValues(t *testing.T) {
	t.Setenv("CLAIMS_TEST_INT", "42")
	t.Setenv("CLAIMS_TEST_BOOL", "true")
	t.Setenv("CLAIMS_TEST_DEC", " 1312.50 ")
	t.Setenv("CLAIMS_TEST_LIST", "a:9092, ,b:9092")

	i, err := Int("CLAIMS_TEST_INT", 0)
	require.NoError(t, err)
	assert.Equal(t, 42, i)

	b, err := Bool("CLAIMS_TEST_BOOL", false)
	require.NoError(t, err)
	assert.True(t, b)

	dec, err := Decimal("CLAIMS_TEST_DEC", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "1312.5", dec.String())

	assert.Equal(t, []string{"a:9092", "b:9092"}, List("CLAIMS_TEST_LIST", nil))
}

func TestReportsParseErrors(t *testing.T) {
	t.Setenv("CLAIMS_TEST_BAD", "not-a-number")

	_, err := Int("CLAIMS_TEST_BAD", 0)
	assert.ErrorContains(t, err, "CLAIMS_TEST_BAD")

	_, err = Decimal("CLAIMS_TEST_BAD", decimal.Zero)
	assert.Error(t, err)

	_, err = Duration("CLAIMS_TEST_BAD", 0)
	assert.Error(t, err)
}
