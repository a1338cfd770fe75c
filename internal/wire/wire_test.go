package wire

import (
	"bytes"
	"testing"

	"github.com/luxfi/sui-arb/model"
	"github.com/stretchr/testify/require"
)

func TestPublicTxFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := PublicTxFrame{
		EffectsBytes: []byte{0x01, 0x02, 0x03},
		EventsJSON:   []byte(`[{"type":"swap"}]`),
	}
	require.NoError(t, WritePublicTxFrame(&buf, in))

	out, err := ReadPublicTxFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestReadPublicTxFrameShortRead(t *testing.T) {
	_, err := ReadPublicTxFrame(bytes.NewReader([]byte{0x00, 0x00}))
	require.Error(t, err)
}

func TestUpdateFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	id, err := model.ObjectIDFromHex("0x01")
	require.NoError(t, err)
	in := []ObjectUpdate{{ID: id, Object: model.Object{ID: id, Version: 7}}}
	require.NoError(t, WriteUpdateFrame(&buf, in))

	out, err := ReadUpdateFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestReadFrameRejectsOversizeLength(t *testing.T) {
	var buf bytes.Buffer
	lenBuf := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	buf.Write(lenBuf)
	buf.Write(lenBuf)
	_, err := ReadPublicTxFrame(&buf)
	require.Error(t, err)
}
