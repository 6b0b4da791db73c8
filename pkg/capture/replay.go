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

package capture

import (
	"context"
	"io"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-muse/pkg/layers"
	"jinr.ru/greenlab/go-muse/pkg/log"
)

// Handler receives the raw payload of every replayed packet
type Handler func(channel int, payload []byte) error

// Replay reads packets from the source until it is exhausted and passes them to the handler.
// Malformed packets are passed as well, it is up to the handler to drop them.
// It returns the number of handled packets.
func Replay(ctx context.Context, src gopacket.PacketDataSource, handle Handler) (int, error) {
	source := gopacket.NewPacketSource(src, layers.MuseLayerType)
	count := 0
	for {
		select {
		case <-ctx.Done():
			return count, ctx.Err()
		default:
		}

		packet, err := source.NextPacket()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		channel, ok := ChannelOf(packet)
		if !ok {
			log.Warning("Packet without channel id, skip it")
			continue
		}
		if errLayer := packet.ErrorLayer(); errLayer != nil {
			log.Debug("Replay malformed packet on channel %d: %s", channel, errLayer.Error())
		}
		if err := handle(channel, packet.Data()); err != nil {
			return count, err
		}
		count++
	}
}
