package tapeio_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gon/internal/tapeio"
)

func TestParseNumbers(t *testing.T) {
	values, err := tapeio.ParseNumbers([]string{"1", "0", "18446744073709551615", "'A'", "<ESC>"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 0, math.MaxUint64, 'A', 0x1b}, values)

	values, err = tapeio.ParseNumbers([]string{"3", "-1", "x", "18446744073709551616", "4"})
	assert.Equal(t, []uint64{3, 4}, values, "expected invalid tokens skipped")
	var skipped tapeio.SkipError
	require.True(t, errors.As(err, &skipped))
	assert.Equal(t, tapeio.SkipError{"-1", "x", "18446744073709551616"}, skipped)
	assert.EqualError(t, err, "skipped invalid seed element(s): -1 x 18446744073709551616")
}

func TestExplode(t *testing.T) {
	assert.Equal(t, []uint64{'h', 'i', 0xce, 0xbb}, tapeio.ExplodeBytes([]string{"hi", "λ"}))
	assert.Equal(t, []uint64{'h', 'i', 'λ'}, tapeio.ExplodeRunes([]string{"hi", "λ"}))
	assert.Nil(t, tapeio.ExplodeBytes(nil))

	values, err := tapeio.Seed(tapeio.InputRunes, []string{"λ"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{'λ'}, values)
}

func TestInputMode(t *testing.T) {
	var m tapeio.InputMode
	require.NoError(t, m.UnmarshalText([]byte("bytes")))
	assert.Equal(t, tapeio.InputBytes, m)
	assert.Equal(t, "bytes", m.String())
	assert.Error(t, m.UnmarshalText([]byte("words")))
}

func TestWriteNumbers(t *testing.T) {
	for _, tc := range []struct {
		name   string
		values []uint64
		want   string
	}{
		{"single", []uint64{5}, "5"},
		{"several", []uint64{0, 3, 10}, "0 3 10"},
		{"max", []uint64{math.MaxUint64}, "18446744073709551615"},
		{"none", nil, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			require.NoError(t, tapeio.Write(&sb, tapeio.Numbers, tc.values))
			assert.Equal(t, tc.want, sb.String())
		})
	}
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 1, tapeio.Width(0))
	assert.Equal(t, 1, tapeio.Width(255))
	assert.Equal(t, 2, tapeio.Width(256))
	assert.Equal(t, 2, tapeio.Width(65535))
	assert.Equal(t, 4, tapeio.Width(65536))
	assert.Equal(t, 4, tapeio.Width(math.MaxUint32))
	assert.Equal(t, 8, tapeio.Width(math.MaxUint32+1))
}

func TestWriteBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tapeio.Write(&buf, tapeio.Bytes, []uint64{
		0x41, 0x1234, 0x12345678, 0x0102030405060708,
	}))
	assert.Equal(t, []byte{
		0x41,
		0x34, 0x12,
		0x78, 0x56, 0x34, 0x12,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}, buf.Bytes())
}

func TestWriteRunes(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, tapeio.Write(&sb, tapeio.Runes, []uint64{'H', 'i', '\n', 'λ', math.MaxUint64}))
	assert.Equal(t, "Hi\nλ�", sb.String())
}

func TestFormat(t *testing.T) {
	var f tapeio.Format
	require.NoError(t, f.UnmarshalText([]byte("runes")))
	assert.Equal(t, tapeio.Runes, f)
	assert.Error(t, f.UnmarshalText([]byte("hex")))
	assert.Error(t, tapeio.Write(&strings.Builder{}, tapeio.Format(9), nil))
}
