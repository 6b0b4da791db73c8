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
	"bufio"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/gopacket"
	"github.com/vmihailenco/msgpack/v5"
)

// Reader reads capture records. It implements gopacket.PacketDataSource,
// the channel id of every packet is stored in CaptureInfo.AncillaryData.
type Reader struct {
	format  Format
	decoder *msgpack.Decoder
	scanner *bufio.Scanner
	line    int
	closer  io.Closer
}

var _ gopacket.PacketDataSource = &Reader{}

func NewReader(r io.Reader, format Format) *Reader {
	reader := &Reader{format: format}
	if format == FormatText {
		reader.scanner = bufio.NewScanner(r)
	} else {
		reader.decoder = msgpack.NewDecoder(r)
	}
	return reader
}

// Open opens the capture file, the format is selected by FormatFromPath
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	reader := NewReader(f, FormatFromPath(path))
	reader.closer = f
	return reader, nil
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Next returns the next record or io.EOF when the capture is over
func (r *Reader) Next() (*Record, error) {
	if r.format == FormatText {
		return r.nextText()
	}
	record := &Record{}
	if err := r.decoder.Decode(record); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, ErrCaptureRecord{What: err.Error()}
	}
	return record, nil
}

func (r *Reader) nextText() (*Record, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, ErrCaptureLine{Line: r.line, What: "expected <channel> <hex payload>"}
		}
		channel, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, ErrCaptureLine{Line: r.line, What: "wrong channel: " + err.Error()}
		}
		data, err := hex.DecodeString(fields[1])
		if err != nil {
			return nil, ErrCaptureLine{Line: r.line, What: "wrong payload: " + err.Error()}
		}
		return &Record{Channel: channel, Data: data}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (r *Reader) ReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error) {
	record, err := r.Next()
	if err != nil {
		return nil, ci, err
	}
	data = record.Data
	ci = gopacket.CaptureInfo{
		Timestamp:     record.Timestamp,
		CaptureLength: len(data),
		Length:        len(data),
		AncillaryData: []interface{}{record.Channel},
	}
	return data, ci, nil
}

// ChannelOf returns the channel id stored by Reader in the packet metadata
func ChannelOf(packet gopacket.Packet) (int, bool) {
	md := packet.Metadata()
	if md == nil {
		return 0, false
	}
	for _, v := range md.AncillaryData {
		if channel, ok := v.(int); ok {
			return channel, true
		}
	}
	return 0, false
}
