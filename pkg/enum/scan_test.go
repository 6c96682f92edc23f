package enum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enumkit/pkg/enum"
)

type level int8

const (
	Low  level = -3
	Mid  level = 5
	High level = 100
)

func (l level) EnumRange() (int, int) { return -10, 10 }

func (l level) String() string {
	switch l {
	case Low:
		return "Low"
	case Mid:
		return "Mid"
	case High:
		return "High"
	}
	return "level(?)"
}

func TestScanDefaultWindow(t *testing.T) {
	res, err := enum.Scan(enum.DefaultWindow, enum.DefaultRender[fruit])
	require.NoError(t, err)

	assert.Equal(t, 3, res.Count())
	assert.Equal(t, []fruit{Apple, Banana, Orange}, res.Values())
	assert.Len(t, res.Members(), res.Count())

	// negative offsets cannot be represented by an unsigned type
	first := res.Members()[0]
	assert.Equal(t, 128, first.Offset)
	assert.Equal(t, "Apple", first.Name)
}

func TestScanExcludesNonMembers(t *testing.T) {
	res := enum.MustScan(enum.DefaultWindow, enum.DefaultRender[fruit])
	for v := 3; v <= 128; v++ {
		for _, c := range res.Members() {
			assert.NotEqual(t, fruit(v), c.Value)
		}
	}
}

func TestScanHonoursRangedWindow(t *testing.T) {
	w := enum.WindowOf[level]()
	assert.Equal(t, enum.Window{Min: -10, Max: 10}, w)

	res := enum.MustScan(w, enum.DefaultRender[level])
	assert.Equal(t, []level{Low, Mid}, res.Values())
	assert.False(t, enum.Contains(w, High))
}

func TestScanZeroMembers(t *testing.T) {
	type bare int
	res, err := enum.Scan(enum.DefaultWindow, enum.DefaultRender[bare])
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count())
	assert.Empty(t, res.Values())
}

func TestScanRejectsBadWindow(t *testing.T) {
	for _, w := range []enum.Window{{Min: 0, Max: 0}, {Min: 5, Max: -5}} {
		_, err := enum.Scan(w, enum.DefaultRender[fruit])
		assert.ErrorIs(t, err, enum.ErrBadWindow)
	}
	assert.Panics(t, func() { enum.MustScan(enum.Window{Min: 1, Max: 1}, enum.DefaultRender[fruit]) })
}

func TestWindowWidthIncludesBounds(t *testing.T) {
	assert.Equal(t, 257, enum.DefaultWindow.Width())
	assert.Equal(t, "[-128, 128]", enum.DefaultWindow.String())
}
