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
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Writer appends records to a capture
type Writer struct {
	format  Format
	out     io.Writer
	encoder *msgpack.Encoder
	closer  io.Closer
}

func NewWriter(w io.Writer, format Format) *Writer {
	writer := &Writer{format: format, out: w}
	if format == FormatMsgpack {
		writer.encoder = msgpack.NewEncoder(w)
	}
	return writer
}

// Create creates or truncates the capture file, the format is selected by FormatFromPath
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(f, FormatFromPath(path))
	writer.closer = f
	return writer, nil
}

func (w *Writer) Write(record *Record) error {
	if w.format == FormatText {
		_, err := fmt.Fprintf(w.out, "%d %x\n", record.Channel, record.Data)
		return err
	}
	return w.encoder.Encode(record)
}

func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
