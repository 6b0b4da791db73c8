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

	"jinr.ru/greenlab/go-muse/pkg/log"
)

const (
	// MinQualitySamples is the minimal input length for quality estimation,
	// shorter inputs are reported as perfect quality
	MinQualitySamples = 32
	// MinAnalysisSamples is the minimal input length for classifiers and band powers
	MinAnalysisSamples = 256
	// DefaultSamplingRate of EEG channels in Hz
	DefaultSamplingRate = 256
	// RailedGain ...
	RailedGain = 1

	QualityBad  = 0.0
	QualityFair = 50.0
	QualityGood = 100.0
)

// StdQuality grades the signal by its standard deviation.
// A flat signal means a disconnected electrode.
func StdQuality(data []float64) float64 {
	std := Std(data)
	switch {
	case std < 1.0:
		return QualityBad
	case std < 10.0:
		return QualityFair
	}
	return QualityGood
}

// SignalQuality estimates quality in [0, 100] using the railed percentage of the analyzer
// and StdQuality when the analyzer fails
func SignalQuality(a Analyzer, data []float64) float64 {
	if len(data) < MinQualitySamples {
		return QualityGood
	}
	if a != nil {
		railed, err := a.RailedPercentage(data, RailedGain)
		if err == nil && math.IsNaN(railed) {
			err = ErrAnalyzer{What: "railed percentage is NaN"}
		}
		if err == nil {
			return clamp(100-railed*100, 0, 100)
		}
		log.Debug("Railed percentage is not available, fallback to std: %s", err)
	}
	return StdQuality(data)
}

// Predict returns the classifier score for the metric.
// ok is false when the input is too short or the analyzer fails.
func Predict(a Analyzer, metric Metric, data []float64) (score float64, ok bool) {
	if a == nil || len(data) < MinAnalysisSamples {
		return 0, false
	}
	result, err := a.Predict(metric, data)
	if err != nil {
		log.Debug("Prediction of %s failed: %s", metric, err)
		return 0, false
	}
	if len(result) == 0 || math.IsNaN(result[0]) {
		return 0, false
	}
	return clamp(result[0], 0, 100), true
}

// BandPowersOf returns band powers of the signal.
// ok is false when the input is too short or the analyzer fails.
func BandPowersOf(a Analyzer, data []float64, samplingRate int) (bp BandPowers, ok bool) {
	if a == nil || len(data) < MinAnalysisSamples {
		return bp, false
	}
	bp, err := a.BandPowers(data, samplingRate)
	if err != nil {
		log.Debug("Band powers are not available: %s", err)
		return BandPowers{}, false
	}
	return bp, true
}
