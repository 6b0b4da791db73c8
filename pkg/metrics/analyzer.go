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

// Metric selects the classifier used by Analyzer.Predict
type Metric int

const (
	MetricMindfulness Metric = iota
	MetricRestfulness
)

func (m Metric) String() string {
	switch m {
	case MetricMindfulness:
		return "mindfulness"
	case MetricRestfulness:
		return "restfulness"
	}
	return "unknown"
}

// BandPowers is the average power of classic EEG bands
type BandPowers struct {
	Delta float64 `json:"delta" msgpack:"delta"` // 1-4 Hz
	Theta float64 `json:"theta" msgpack:"theta"` // 4-8 Hz
	Alpha float64 `json:"alpha" msgpack:"alpha"` // 8-13 Hz
	Beta  float64 `json:"beta" msgpack:"beta"`   // 13-30 Hz
	Gamma float64 `json:"gamma" msgpack:"gamma"` // 30-45 Hz
}

// Analyzer is an external signal processing and ML library.
// Any of its methods may fail, callers must use the policies of this package
// which fall back to local computations.
type Analyzer interface {
	// RailedPercentage returns the fraction [0, 1] of samples close to the sensor limits
	RailedPercentage(data []float64, gain int) (float64, error)
	// Predict runs the classifier for the metric, scores are in [0, 100]
	Predict(metric Metric, data []float64) ([]float64, error)
	// BandPowers ...
	BandPowers(data []float64, samplingRate int) (BandPowers, error)
}

// NopAnalyzer is used when no external library is available
type NopAnalyzer struct{}

var _ Analyzer = NopAnalyzer{}

func (NopAnalyzer) RailedPercentage(data []float64, gain int) (float64, error) {
	return 0, ErrAnalyzerUnavailable
}

func (NopAnalyzer) Predict(metric Metric, data []float64) ([]float64, error) {
	return nil, ErrAnalyzerUnavailable
}

func (NopAnalyzer) BandPowers(data []float64, samplingRate int) (BandPowers, error) {
	return BandPowers{}, ErrAnalyzerUnavailable
}
