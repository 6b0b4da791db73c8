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
	"jinr.ru/greenlab/go-muse/pkg/device"
	"jinr.ru/greenlab/go-muse/pkg/metrics"
)

// PlaceholderSamples is the row length of the placeholder EEG frame
const PlaceholderSamples = 12

// ParseBatch parses payloads as if payload i was received on channel i.
// When nothing is emitted a placeholder frame with zero EEG is returned
// so the result is never empty.
func (a *Aggregator) ParseBatch(payloads [][]byte) []*Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	// the channel count is taken before lazy initialization
	channels := device.Lookup(a.defaultModel).EEGChannels
	if a.state == StateReady {
		channels = a.caps.EEGChannels
	}

	var frames []*Frame
	for i, payload := range payloads {
		frames = append(frames, a.parse(i, payload)...)
	}
	if len(frames) > 0 {
		return frames
	}

	eeg := make([][]float64, channels)
	for i := range eeg {
		eeg[i] = make([]float64, PlaceholderSamples)
	}
	return []*Frame{{
		EEG:           eeg,
		Timestamp:     a.now(),
		Types:         []PacketType{PacketTypeEEG},
		SignalQuality: metrics.QualityGood,
	}}
}
