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
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload(seq byte) []byte {
	data := make([]byte, 20)
	data[1] = seq
	for i := 2; i < len(data); i++ {
		data[i] = 0x80
	}
	return data
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatText, FormatFromPath("session.txt"))
	assert.Equal(t, FormatText, FormatFromPath("/tmp/SESSION.HEX"))
	assert.Equal(t, FormatMsgpack, FormatFromPath("session.mpk"))
	assert.Equal(t, FormatMsgpack, FormatFromPath("session"))
}

func TestMsgpackWriteRead(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []*Record{
		{Channel: 0, Data: payload(1), Timestamp: ts},
		{Channel: 7, Data: payload(2), Timestamp: ts.Add(time.Second)},
		{Channel: 3, Data: []byte{0x01, 0x02}, Timestamp: ts.Add(2 * time.Second)},
	}

	buf := &bytes.Buffer{}
	w := NewWriter(buf, FormatMsgpack)
	for _, record := range records {
		require.Nil(t, w.Write(record))
	}

	r := NewReader(buf, FormatMsgpack)
	for _, expected := range records {
		record, err := r.Next()
		require.Nil(t, err)
		assert.Equal(t, expected.Channel, record.Channel)
		assert.Equal(t, expected.Data, record.Data)
		assert.True(t, expected.Timestamp.Equal(record.Timestamp))
	}
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestTextRead(t *testing.T) {
	text := `
# channel payload
0 0001808080808080808080808080808080808080

  7   0002808080808080808080808080808080808080
`
	r := NewReader(strings.NewReader(text), FormatText)

	record, err := r.Next()
	require.Nil(t, err)
	assert.Equal(t, 0, record.Channel)
	assert.Equal(t, payload(1), record.Data)

	record, err = r.Next()
	require.Nil(t, err)
	assert.Equal(t, 7, record.Channel)
	assert.Equal(t, payload(2), record.Data)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestTextReadErrors(t *testing.T) {
	for _, text := range []string{"0", "x 00", "0 0g", "0 00 00"} {
		r := NewReader(strings.NewReader("# header\n"+text), FormatText)
		_, err := r.Next()
		var lineErr ErrCaptureLine
		require.True(t, errors.As(err, &lineErr), text)
		assert.Equal(t, 2, lineErr.Line)
	}
}

func TestTextWrite(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf, FormatText)
	require.Nil(t, w.Write(&Record{Channel: 5, Data: []byte{0xab, 0x01}}))
	assert.Equal(t, "5 ab01\n", buf.String())
}

func TestReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.mpk")
	w, err := Create(path)
	require.Nil(t, err)
	require.Nil(t, w.Write(&Record{Channel: 0, Data: payload(1)}))
	require.Nil(t, w.Write(&Record{Channel: 9, Data: []byte{0x01}}))
	require.Nil(t, w.Write(&Record{Channel: 5, Data: payload(3)}))
	require.Nil(t, w.Close())

	r, err := Open(path)
	require.Nil(t, err)
	defer r.Close()

	var channels []int
	var lengths []int
	count, err := Replay(context.Background(), r, func(channel int, data []byte) error {
		channels = append(channels, channel)
		lengths = append(lengths, len(data))
		return nil
	})
	require.Nil(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, []int{0, 9, 5}, channels)
	assert.Equal(t, []int{20, 1, 20}, lengths)
}

func TestReplayHandlerError(t *testing.T) {
	text := "0 0001808080808080808080808080808080808080\n1 0001808080808080808080808080808080808080\n"
	r := NewReader(strings.NewReader(text), FormatText)
	stop := errors.New("stop")
	count, err := Replay(context.Background(), r, func(channel int, data []byte) error {
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 0, count)
}

func TestReplayCanceled(t *testing.T) {
	r := NewReader(strings.NewReader("0 00\n"), FormatText)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	count, err := Replay(ctx, r, func(channel int, data []byte) error {
		return nil
	})
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 0, count)
}
