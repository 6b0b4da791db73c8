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
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// CommandLayerNum identifies the layer
	CommandLayerNum = 2002
	// CommandTerminator ends every command packet
	CommandTerminator = 0x0a
)

// CommandLayer is a text command written to the control characteristic.
// Wire format: length byte (len(command) + 1), command bytes, line feed.
// The length byte wraps for commands longer than 254 bytes.
type CommandLayer struct {
	layers.BaseLayer
	Command string
}

var CommandLayerType = gopacket.RegisterLayerType(CommandLayerNum,
	gopacket.LayerTypeMetadata{Name: "CommandLayerType", Decoder: gopacket.DecodeFunc(DecodeCommandLayer)})

// LayerType returns the type of the command layer in the layer catalog
func (c *CommandLayer) LayerType() gopacket.LayerType {
	return CommandLayerType
}

// Len is the length of the serialized command
func (c *CommandLayer) Len() int {
	return len(c.Command) + 2
}

// Serialize writes the command into buf which must be at least Len() bytes long
func (c *CommandLayer) Serialize(buf []byte) {
	buf[0] = uint8(len(c.Command) + 1)
	copy(buf[1:], c.Command)
	buf[len(c.Command)+1] = CommandTerminator
}

// SerializeTo serializes the command layer into bytes and writes the bytes to the SerializeBuffer
func (c *CommandLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.AppendBytes(c.Len())
	if err != nil {
		return err
	}
	c.Serialize(bytes)
	return nil
}

func (c *CommandLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < 2 {
		df.SetTruncated()
		return ErrCommand{What: "packet too short"}
	}
	if data[len(data)-1] != CommandTerminator {
		return ErrCommand{What: "missing line feed terminator"}
	}
	if data[0] != uint8(len(data)-1) {
		return ErrCommand{What: "length prefix does not match packet length"}
	}
	c.BaseLayer = layers.BaseLayer{
		Contents: data,
		Payload:  []byte{},
	}
	c.Command = string(data[1 : len(data)-1])
	return nil
}

func DecodeCommandLayer(data []byte, p gopacket.PacketBuilder) error {
	c := &CommandLayer{}
	err := c.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(c)
	return nil
}

// EncodeCommand returns the packet for the given text command
func EncodeCommand(command string) []byte {
	c := &CommandLayer{Command: command}
	buf := make([]byte, c.Len())
	c.Serialize(buf)
	return buf
}
