/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package layers

import (
	"testing"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func musePacket(seq uint16, samples []byte) []byte {
	data := make([]byte, PacketLength)
	data[0] = uint8(seq >> 8)
	data[1] = uint8(seq)
	copy(data[SeqLength:], samples)
	return data
}

func TestMuseLayerDecode(t *testing.T) {
	data := musePacket(0x2c1f, eegFixture)

	packet := gopacket.NewPacket(data, MuseLayerType, gopacket.Default)
	require.Nil(t, packet.ErrorLayer())

	layer := packet.Layer(MuseLayerType)
	require.NotNil(t, layer)
	m := layer.(*MuseLayer)
	assert.Equal(t, uint16(0x2c1f), m.Seq)
	assert.Equal(t, eegFixture, m.Samples)
	assert.Equal(t, data, m.LayerContents())
}

func TestMuseLayerWrongLength(t *testing.T) {
	for _, length := range []int{0, 1, 19, 21, 40} {
		m := &MuseLayer{}
		err := m.DecodeFromBytes(make([]byte, length), gopacket.NilDecodeFeedback)
		require.Error(t, err)
		assert.Equal(t, ErrPacketLength{Length: length}, err)
	}

	packet := gopacket.NewPacket(make([]byte, 19), MuseLayerType, gopacket.Default)
	assert.NotNil(t, packet.ErrorLayer())
	assert.Nil(t, packet.Layer(MuseLayerType))
}

func TestMuseLayerSerialize(t *testing.T) {
	m := &MuseLayer{Seq: 0x0102, Samples: eegFixture}
	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, m))
	assert.Equal(t, musePacket(0x0102, eegFixture), buf.Bytes())

	bad := &MuseLayer{Seq: 1, Samples: []byte{1, 2, 3}}
	err := gopacket.SerializeLayers(gopacket.NewSerializeBuffer(), gopacket.SerializeOptions{}, bad)
	assert.Equal(t, ErrPacketLength{Length: 5}, err)
}

func TestEncodeCommand(t *testing.T) {
	assert.Equal(t, []byte{0x04, 'p', '2', '1', 0x0a}, EncodeCommand("p21"))
	assert.Equal(t, []byte{0x01, 0x0a}, EncodeCommand(""))
	assert.Equal(t, []byte{0x02, 'd', 0x0a}, EncodeCommand("d"))
}

func TestCommandLayerRoundTrip(t *testing.T) {
	c := &CommandLayer{Command: "v1"}
	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, c))
	assert.Equal(t, EncodeCommand("v1"), buf.Bytes())

	packet := gopacket.NewPacket(buf.Bytes(), CommandLayerType, gopacket.Default)
	require.Nil(t, packet.ErrorLayer())
	decoded := packet.Layer(CommandLayerType).(*CommandLayer)
	assert.Equal(t, "v1", decoded.Command)
}

func TestCommandLayerMalformed(t *testing.T) {
	tests := map[string][]byte{
		"short":           {0x01},
		"no terminator":   {0x03, 'p', '2', '1'},
		"length mismatch": {0x09, 'p', '2', '1', 0x0a},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			c := &CommandLayer{}
			err := c.DecodeFromBytes(data, gopacket.NilDecodeFeedback)
			assert.IsType(t, ErrCommand{}, err)
		})
	}
}
