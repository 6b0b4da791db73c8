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

	"jinr.ru/greenlab/go-muse/pkg/device"
)

const (
	// MotionReadings is the number of (x, y, z) readings in a motion packet
	MotionReadings = 3
	// MotionReadingSize is the size in bytes of one (x, y, z) reading
	MotionReadingSize = 6
)

// Int16 converts 2 big endian bytes of a two's complement value
func Int16(data []byte) int32 {
	return int32(int16(binary.BigEndian.Uint16(data[0:2])))
}

// Int24 converts 3 big endian bytes of a two's complement value
func Int24(data []byte) int32 {
	val := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
	if val&0x800000 != 0 {
		return int32(val) - 0x1000000
	}
	return int32(val)
}

// DecodeEEGSamples unpacks EEG samples and converts them to microvolts.
// Every 3 bytes carry 2 samples:
// first  = byte0 << 4 | byte1 >> 4
// second = (byte1 & 0x0f) << 8 | byte2
// Trailing bytes which do not make up a full triplet are ignored.
func DecodeEEGSamples(data []byte, resolution device.Resolution) []float64 {
	scale := resolution.ScaleFactor()
	offset := resolution.Offset()

	samples := make([]float64, 0, len(data)/3*2)
	for i := 0; i+2 < len(data); i += 3 {
		first := uint16(data[i])<<4 | uint16(data[i+1]>>4)
		second := uint16(data[i+1]&0x0f)<<8 | uint16(data[i+2])
		samples = append(samples,
			(float64(first)-offset)*scale,
			(float64(second)-offset)*scale,
		)
	}
	return samples
}

// DecodeMotionSample decodes accelerometer or gyroscope data.
// The packet holds MotionReadings consecutive readings, every complete reading
// overwrites the previous one so only the last one is returned.
// ok is false when data does not contain a single complete reading.
func DecodeMotionSample(data []byte, scale float64) (xyz [3]float64, ok bool) {
	for i := 0; i < MotionReadings; i++ {
		offset := i * MotionReadingSize
		if offset+MotionReadingSize > len(data) {
			break
		}
		xyz = [3]float64{
			float64(Int16(data[offset:])) * scale,
			float64(Int16(data[offset+2:])) * scale,
			float64(Int16(data[offset+4:])) * scale,
		}
		ok = true
	}
	return xyz, ok
}

// DecodeOpticalSamples decodes raw optical ADC counts, no scaling is applied
func DecodeOpticalSamples(data []byte) []float64 {
	samples := make([]float64, 0, len(data)/3)
	for i := 0; i+2 < len(data); i += 3 {
		samples = append(samples, float64(Int24(data[i:])))
	}
	return samples
}
