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

package device

// Resolution is the bit width of a packed EEG sample
type Resolution uint8

const (
	Resolution12Bit Resolution = 12
	Resolution14Bit Resolution = 14
)

// ScaleFactor converts offset-corrected counts to microvolts
func (r Resolution) ScaleFactor() float64 {
	if r == Resolution14Bit {
		return 125.0 / 2048.0
	}
	return 125.0 / 256.0
}

// Offset is the raw value corresponding to zero volts
func (r Resolution) Offset() float64 {
	if r == Resolution14Bit {
		return 0x2000
	}
	return 0x800
}
