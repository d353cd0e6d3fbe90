package currency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	f := Default()
	assert.Equal(t, "₱1,234.50", f.Format(1234.5))
	assert.Equal(t, "₱5,000,000.00", f.Format(5_000_000))
	assert.Equal(t, "₱0.00", f.Format(0))
}

func TestFormat_NonFiniteIsZero(t *testing.T) {
	f := Default()
	assert.Equal(t, "₱0.00", f.Format(math.NaN()))
	assert.Equal(t, "₱0.00", f.Format(math.Inf(1)))
}

func TestNew_Locale(t *testing.T) {
	f := New("de-DE", "€")
	assert.Equal(t, "€1.234,50", f.Format(1234.5))
}
