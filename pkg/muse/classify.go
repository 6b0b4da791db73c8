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
	"fmt"

	"jinr.ru/greenlab/go-muse/pkg/device"
)

const (
	// AccelerometerChannel carries motion data unless the model uses it for EEG
	AccelerometerChannel = 5
	// GyroscopeChannel carries motion data unless the model uses it for EEG
	GyroscopeChannel = 6
	// FirstOpticalChannel is the channel id of the infrared optical buffer
	FirstOpticalChannel = 7
	// LastOpticalChannel ...
	LastOpticalChannel = FirstOpticalChannel + device.MaxOpticalChannels - 1
)

type ChannelKind int

const (
	KindUnrecognized ChannelKind = iota
	KindEEG
	KindAccelerometer
	KindGyroscope
	KindOptical
)

var channelKindNames = map[ChannelKind]string{
	KindUnrecognized:  "unrecognized",
	KindEEG:           "eeg",
	KindAccelerometer: "accelerometer",
	KindGyroscope:     "gyroscope",
	KindOptical:       "optical",
}

func (k ChannelKind) String() string {
	return channelKindNames[k]
}

// Channel is the meaning of a wire channel id for a particular model.
// Index is the buffer index for EEG and optical channels.
type Channel struct {
	Kind  ChannelKind
	Index int
}

func (c Channel) String() string {
	switch c.Kind {
	case KindEEG, KindOptical:
		return fmt.Sprintf("%s-%d", c.Kind, c.Index)
	}
	return c.Kind.String()
}

// Classify maps a channel id to its meaning.
// Ids 5 and 6 are EEG channels on models with more than 5 EEG channels
// and motion channels otherwise.
func Classify(id int, caps device.Capabilities) Channel {
	switch {
	case id >= 0 && id <= GyroscopeChannel && id < caps.EEGChannels:
		return Channel{Kind: KindEEG, Index: id}
	case id == AccelerometerChannel:
		return Channel{Kind: KindAccelerometer}
	case id == GyroscopeChannel:
		return Channel{Kind: KindGyroscope}
	case id >= FirstOpticalChannel && id <= LastOpticalChannel:
		return Channel{Kind: KindOptical, Index: id - FirstOpticalChannel}
	}
	return Channel{Kind: KindUnrecognized}
}
