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

package muse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-muse/pkg/device"
	"jinr.ru/greenlab/go-muse/pkg/metrics"
)

func assertPlaceholder(t *testing.T, frames []*Frame, rows int) {
	t.Helper()
	require.Len(t, frames, 1)
	frame := frames[0]
	require.Len(t, frame.EEG, rows)
	for _, row := range frame.EEG {
		assert.Equal(t, make([]float64, PlaceholderSamples), row)
	}
	assert.Equal(t, []PacketType{PacketTypeEEG}, frame.Types)
	assert.Equal(t, metrics.QualityGood, frame.SignalQuality)
	assert.Equal(t, fixedTime, frame.Timestamp)
	assert.Nil(t, frame.SpO2)
}

func TestParseBatchPlaceholderUninitialized(t *testing.T) {
	a := NewAggregator(WithClock(func() time.Time { return fixedTime }))
	assertPlaceholder(t, a.ParseBatch(nil), 5)

	state, _ := a.Status()
	assert.Equal(t, StateUninitialized, state)

	// malformed packets do not initialize the aggregator either
	assertPlaceholder(t, a.ParseBatch([][]byte{make([]byte, 3), make([]byte, 19)}), 5)
	state, _ = a.Status()
	assert.Equal(t, StateUninitialized, state)
}

func TestParseBatchPlaceholderUsesModelChannels(t *testing.T) {
	a := newTestAggregator(device.ModelMuse2)
	assertPlaceholder(t, a.ParseBatch([][]byte{packet(0, eegSamples)}), 4)

	a.Init(device.ModelMuseSAthena)
	assertPlaceholder(t, a.ParseBatch(nil), 7)
}

func TestParseBatchChannelIsIndex(t *testing.T) {
	a := newTestAggregator(device.ModelMuseS)
	batch := [][]byte{
		packet(0, eegSamples),
		packet(1, eegSamples),
		packet(2, eegSamples),
		packet(3, eegSamples),
		packet(4, eegSamples),
		packet(5, motionSamples),
		packet(6, motionSamples),
	}
	frames := a.ParseBatch(batch)
	require.Len(t, frames, 3)
	assert.True(t, frames[0].HasType(PacketTypeEEG))
	assert.Len(t, frames[0].EEG, 5)
	assert.Equal(t, uint16(4), frames[0].Sequence)
	assert.True(t, frames[1].HasType(PacketTypeAccel))
	assert.True(t, frames[2].HasType(PacketTypeGyro))
	assertEmptyBuffers(t, a)
}

func TestParseBatchLazyInitialization(t *testing.T) {
	a := NewAggregator(WithClock(func() time.Time { return fixedTime }))
	frames := a.ParseBatch([][]byte{packet(0, eegSamples)})
	assertPlaceholder(t, frames, 5)

	state, model := a.Status()
	assert.Equal(t, StateReady, state)
	assert.Equal(t, device.ModelMuseS, model)
	assert.True(t, a.received[0])
}
