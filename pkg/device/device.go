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

import (
	"strings"
)

const (
	// MaxEEGChannels is the largest EEG channel count of all known models
	MaxEEGChannels = 7
	// MaxOpticalChannels is the largest optical channel count of all known models
	MaxOpticalChannels = 3

	// AccelScaleFactor converts raw accelerometer counts to g
	AccelScaleFactor = 0.0000610352
	// GyroScaleFactor converts raw gyroscope counts to deg/s
	GyroScaleFactor = -0.0074768
)

// Model identifies the headband hardware variant
type Model int

const (
	ModelUnknown Model = iota
	ModelMuse2016
	ModelMuse2
	ModelMuseS
	ModelMuseSAthena
)

var modelNames = map[Model]string{
	ModelUnknown:     "unknown",
	ModelMuse2016:    "muse-2016",
	ModelMuse2:       "muse-2",
	ModelMuseS:       "muse-s",
	ModelMuseSAthena: "muse-s-athena",
}

// Models lists every known model including ModelUnknown
var Models = []Model{ModelUnknown, ModelMuse2016, ModelMuse2, ModelMuseS, ModelMuseSAthena}

func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return modelNames[ModelUnknown]
}

// ParseModel converts the name returned by Model.String back into a Model
func ParseModel(name string) (Model, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for model, modelName := range modelNames {
		if modelName == name {
			return model, nil
		}
	}
	return ModelUnknown, ErrUnknownModel{Name: name}
}

// Capabilities describes channel topology and sample format of a model
type Capabilities struct {
	EEGChannels     int
	Resolution      Resolution
	OpticalChannels int
	HasOptical      bool
	HasNearInfrared bool
}

var capabilities = map[Model]Capabilities{
	ModelUnknown: {
		EEGChannels: 4,
		Resolution:  Resolution12Bit,
	},
	ModelMuse2016: {
		EEGChannels: 4,
		Resolution:  Resolution12Bit,
	},
	ModelMuse2: {
		EEGChannels:     4,
		Resolution:      Resolution12Bit,
		OpticalChannels: 3,
		HasOptical:      true,
	},
	ModelMuseS: {
		EEGChannels:     5,
		Resolution:      Resolution12Bit,
		OpticalChannels: 2,
		HasOptical:      true,
	},
	ModelMuseSAthena: {
		EEGChannels:     7,
		Resolution:      Resolution14Bit,
		OpticalChannels: 3,
		HasOptical:      true,
		HasNearInfrared: true,
	},
}

// Lookup returns capabilities of the model.
// Models outside of the table are treated as ModelUnknown.
func Lookup(m Model) Capabilities {
	if c, ok := capabilities[m]; ok {
		return c
	}
	return capabilities[ModelUnknown]
}

// Capabilities ...
func (m Model) Capabilities() Capabilities {
	return Lookup(m)
}

// phrases are checked in order, the first match wins
var namePhrases = []struct {
	phrases []string
	model   Model
}{
	{[]string{"athena"}, ModelMuseSAthena},
	{[]string{"muse s", "muse-s"}, ModelMuseS},
	{[]string{"muse 2", "muse2"}, ModelMuse2},
	{[]string{"muse 2016", "muse-2016"}, ModelMuse2016},
}

// ModelFromName infers the model from the advertised device name
func ModelFromName(name string) Model {
	lower := strings.ToLower(name)
	for _, entry := range namePhrases {
		for _, phrase := range entry.phrases {
			if strings.Contains(lower, phrase) {
				return entry.model
			}
		}
	}
	return ModelUnknown
}
