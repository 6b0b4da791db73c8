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

// Package capture stores raw notification packets as they are received from the headband
// and plays them back for offline decoding.
package capture

import (
	"path/filepath"
	"strings"
	"time"
)

// Record is a single raw packet received on a channel
type Record struct {
	Channel   int       `msgpack:"channel"`
	Data      []byte    `msgpack:"data"`
	Timestamp time.Time `msgpack:"timestamp"`
}

type Format int

const (
	// FormatMsgpack is a stream of msgpack encoded records
	FormatMsgpack Format = iota
	// FormatText is one "<channel> <hex payload>" record per line,
	// empty lines and lines starting with # are ignored
	FormatText
)

func (f Format) String() string {
	if f == FormatText {
		return "text"
	}
	return "msgpack"
}

// FormatFromPath selects the format by the file extension, .txt and .hex are text captures
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".hex":
		return FormatText
	}
	return FormatMsgpack
}
