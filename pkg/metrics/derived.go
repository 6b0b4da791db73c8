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

package metrics

import (
	"math"
)

const (
	// MinSpO2Samples is the minimal length of infrared and red sequences for SpO2
	MinSpO2Samples = 32
	// MinHemodynamicSamples is the minimal length of every optical sequence for hemodynamics
	MinHemodynamicSamples = 64
	// OpticalReference normalizes optical means before taking the optical density
	OpticalReference = 50000.0
)

// Hemodynamic is a near-infrared estimate of tissue oxygenation
type Hemodynamic struct {
	// Oxygenated hemoglobin, clamped to [-100, 100]
	Oxygenated float64 `json:"oxygenated" msgpack:"oxygenated"`
	// Deoxygenated hemoglobin, clamped to [-100, 100]
	Deoxygenated float64 `json:"deoxygenated" msgpack:"deoxygenated"`
	// TissueSaturationIndex in percent, clamped to [0, 100]
	TissueSaturationIndex float64 `json:"tissueSaturationIndex" msgpack:"tissue_saturation_index"`
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SpO2 estimates blood oxygen saturation from infrared and red optical sequences.
// ok is false when any sequence is shorter than MinSpO2Samples or has a non positive mean.
func SpO2(ir, red []float64) (spo2 float64, ok bool) {
	if len(ir) < MinSpO2Samples || len(red) < MinSpO2Samples {
		return 0, false
	}
	irMean := mean(ir)
	redMean := mean(red)
	if irMean <= 0 || redMean <= 0 {
		return 0, false
	}
	ratio := redMean / irMean
	return clamp(110-25*ratio, 0, 100), true
}

func opticalDensity(m float64) float64 {
	return math.Log(m / OpticalReference)
}

// Hemodynamics estimates oxygenated/deoxygenated hemoglobin and tissue saturation index.
// ok is false when any sequence is shorter than MinHemodynamicSamples or has a non positive mean.
func Hemodynamics(ir, red, nir []float64) (h Hemodynamic, ok bool) {
	if len(ir) < MinHemodynamicSamples || len(red) < MinHemodynamicSamples || len(nir) < MinHemodynamicSamples {
		return h, false
	}
	irMean := mean(ir)
	redMean := mean(red)
	nirMean := mean(nir)
	if irMean <= 0 || redMean <= 0 || nirMean <= 0 {
		return h, false
	}

	odIR := opticalDensity(irMean)
	odNIR := opticalDensity(nirMean)

	oxygenated := (odIR*1.05 - odNIR*0.78) * 500
	deoxygenated := (odNIR*1.10 - odIR*0.69) * 500
	tsi := 0.0
	if total := oxygenated + deoxygenated; total > 0 {
		tsi = oxygenated / total * 100
	}

	return Hemodynamic{
		Oxygenated:            clamp(oxygenated, -100, 100),
		Deoxygenated:          clamp(deoxygenated, -100, 100),
		TissueSaturationIndex: clamp(tsi, 0, 100),
	}, true
}

// Std is the population standard deviation
func Std(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	m := mean(data)
	variance := 0.0
	for _, v := range data {
		variance += (v - m) * (v - m)
	}
	return math.Sqrt(variance / float64(len(data)))
}
