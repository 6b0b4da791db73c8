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
	"encoding/binary"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-muse/pkg/log"
)

const (
	// MuseLayerNum identifies the layer
	MuseLayerNum = 2001
	// PacketLength is the size of every notification sent by the headband
	PacketLength = 20
	// SeqLength is the size of the sequence counter at the beginning of the packet
	SeqLength = 2
	// SamplesLength is the size of the sample run following the sequence counter
	SamplesLength = PacketLength - SeqLength
)

/*
Notification packet (one GATT characteristic per channel)

0000   2c 1f 80 07 ff 80 07 ff 80 07 ff 80 07 ff 80 07
0010   ff 80 07 ff

seq [0:2] big endian
2c 1f
samples [2:20]
EEG      6 x 3 bytes, two 12 bit values per triplet
motion   3 x (x, y, z) int16 big endian
optical  6 x int24 big endian
*/

// MuseLayer is a single 20 byte notification
type MuseLayer struct {
	layers.BaseLayer
	Seq     uint16
	Samples []byte
}

var MuseLayerType = gopacket.RegisterLayerType(MuseLayerNum,
	gopacket.LayerTypeMetadata{Name: "MuseLayerType", Decoder: gopacket.DecodeFunc(DecodeMuseLayer)})

// LayerType returns the type of the Muse layer in the layer catalog
func (m *MuseLayer) LayerType() gopacket.LayerType {
	return MuseLayerType
}

// CanDecode ...
func (m *MuseLayer) CanDecode() gopacket.LayerClass {
	return MuseLayerType
}

// NextLayerType ...
func (m *MuseLayer) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypeZero
}

// Serialize writes the packet into buf which must be at least PacketLength bytes long
func (m *MuseLayer) Serialize(buf []byte) {
	binary.BigEndian.PutUint16(buf[0:SeqLength], m.Seq)
	copy(buf[SeqLength:PacketLength], m.Samples)
}

// SerializeTo serializes the Muse layer into bytes and writes the bytes to the SerializeBuffer
func (m *MuseLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	if len(m.Samples) != SamplesLength {
		return ErrPacketLength{Length: len(m.Samples) + SeqLength}
	}
	bytes, err := b.AppendBytes(PacketLength)
	if err != nil {
		return err
	}
	m.Serialize(bytes)
	return nil
}

func (m *MuseLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) != PacketLength {
		if len(data) < PacketLength {
			df.SetTruncated()
		}
		return ErrPacketLength{Length: len(data)}
	}
	log.Debug("DecodeFromBytes: Muse packet: %x", data)

	m.BaseLayer = layers.BaseLayer{
		Contents: data,
		Payload:  []byte{},
	}
	m.Seq = binary.BigEndian.Uint16(data[0:SeqLength])
	m.Samples = data[SeqLength:]
	return nil
}

func DecodeMuseLayer(data []byte, p gopacket.PacketBuilder) error {
	m := &MuseLayer{}
	err := m.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(m)
	return nil
}
