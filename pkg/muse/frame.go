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
	"strings"
	"time"

	"jinr.ru/greenlab/go-muse/pkg/metrics"
)

// PacketType tags what contributed to a frame
type PacketType int

const (
	PacketTypeEEG PacketType = iota
	PacketTypeAccel
	PacketTypeGyro
	PacketTypePPG
	PacketTypeFNIRS
)

var packetTypeNames = map[PacketType]string{
	PacketTypeEEG:   "eeg",
	PacketTypeAccel: "accel",
	PacketTypeGyro:  "gyro",
	PacketTypePPG:   "ppg",
	PacketTypeFNIRS: "fnirs",
}

func (t PacketType) String() string {
	if name, ok := packetTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

func (t PacketType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *PacketType) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for packetType, packetTypeName := range packetTypeNames {
		if packetTypeName == name {
			*t = packetType
			return nil
		}
	}
	return ErrPacketType{Name: string(text)}
}

// Frame is one decoded instant. Frames are never modified after they are returned.
type Frame struct {
	// EEG rows in microvolts, one row per channel of the model
	EEG [][]float64 `json:"eeg,omitempty" msgpack:"eeg,omitempty"`

	IR  []float64 `json:"ir,omitempty" msgpack:"ir,omitempty"`
	Red []float64 `json:"red,omitempty" msgpack:"red,omitempty"`
	NIR []float64 `json:"nir,omitempty" msgpack:"nir,omitempty"`

	SpO2        *float64             `json:"spo2,omitempty" msgpack:"spo2,omitempty"`
	Hemodynamic *metrics.Hemodynamic `json:"hemodynamic,omitempty" msgpack:"hemodynamic,omitempty"`

	// Accel in g, Gyro in deg/s
	Accel [3]float64 `json:"accel" msgpack:"accel"`
	Gyro  [3]float64 `json:"gyro" msgpack:"gyro"`

	Timestamp time.Time `json:"timestamp" msgpack:"timestamp"`
	Battery   float64   `json:"battery" msgpack:"battery"`
	// Sequence counter of the packet which completed the frame
	Sequence uint16       `json:"sequence" msgpack:"sequence"`
	Types    []PacketType `json:"types" msgpack:"types"`

	SignalQuality float64             `json:"signalQuality" msgpack:"signal_quality"`
	Mindfulness   *float64            `json:"mindfulness,omitempty" msgpack:"mindfulness,omitempty"`
	Restfulness   *float64            `json:"restfulness,omitempty" msgpack:"restfulness,omitempty"`
	BandPowers    *metrics.BandPowers `json:"bandPowers,omitempty" msgpack:"band_powers,omitempty"`
}

// HasType ...
func (f *Frame) HasType(t PacketType) bool {
	for _, ft := range f.Types {
		if ft == t {
			return true
		}
	}
	return false
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
