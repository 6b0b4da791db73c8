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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(value float64, n int) []float64 {
	result := make([]float64, n)
	for i := range result {
		result[i] = value
	}
	return result
}

// alternating +amplitude/-amplitude around zero, std equals amplitude
func square(amplitude float64, n int) []float64 {
	result := make([]float64, n)
	for i := range result {
		if i%2 == 0 {
			result[i] = amplitude
		} else {
			result[i] = -amplitude
		}
	}
	return result
}

func TestSpO2(t *testing.T) {
	spo2, ok := SpO2(constant(100, 32), constant(80, 32))
	require.True(t, ok)
	assert.InDelta(t, 90.0, spo2, 1e-9)

	// clamped
	spo2, ok = SpO2(constant(100, 40), constant(10, 40))
	require.True(t, ok)
	assert.Equal(t, 100.0, spo2)
	spo2, ok = SpO2(constant(10, 40), constant(100, 40))
	require.True(t, ok)
	assert.Equal(t, 0.0, spo2)
}

func TestSpO2Undefined(t *testing.T) {
	_, ok := SpO2(constant(100, 31), constant(80, 32))
	assert.False(t, ok)
	_, ok = SpO2(constant(100, 32), constant(80, 31))
	assert.False(t, ok)
	_, ok = SpO2(constant(0, 32), constant(80, 32))
	assert.False(t, ok)
	_, ok = SpO2(constant(100, 32), constant(-80, 32))
	assert.False(t, ok)
	_, ok = SpO2(nil, nil)
	assert.False(t, ok)
}

func TestHemodynamics(t *testing.T) {
	h, ok := Hemodynamics(constant(60000, 64), constant(1, 64), constant(40000, 64))
	require.True(t, ok)

	odIR := math.Log(60000.0 / 50000.0)
	odNIR := math.Log(40000.0 / 50000.0)
	oxygenated := (odIR*1.05 - odNIR*0.78) * 500
	deoxygenated := (odNIR*1.10 - odIR*0.69) * 500
	// about 182.7 and -185.6 before clamping
	assert.Equal(t, 100.0, h.Oxygenated)
	assert.Equal(t, -100.0, h.Deoxygenated)
	// the sum is negative
	require.True(t, oxygenated+deoxygenated < 0)
	assert.Equal(t, 0.0, h.TissueSaturationIndex)
}

func TestHemodynamicsWithinRange(t *testing.T) {
	h, ok := Hemodynamics(constant(51000, 64), constant(40800, 64), constant(51200, 64))
	require.True(t, ok)

	odIR := math.Log(51000.0 / 50000.0)
	odNIR := math.Log(51200.0 / 50000.0)
	oxygenated := (odIR*1.05 - odNIR*0.78) * 500
	deoxygenated := (odNIR*1.10 - odIR*0.69) * 500
	assert.InDelta(t, oxygenated, h.Oxygenated, 1e-9)
	assert.InDelta(t, deoxygenated, h.Deoxygenated, 1e-9)
	assert.InDelta(t, oxygenated/(oxygenated+deoxygenated)*100, h.TissueSaturationIndex, 1e-9)
}

// 64 samples per optical channel of a near-infrared headband
func TestOpticalMetricsNearInfrared(t *testing.T) {
	ir, red, nir := constant(51000, 64), constant(40800, 64), constant(51000, 64)

	spo2, ok := SpO2(ir, red)
	require.True(t, ok)
	assert.InDelta(t, 90.0, spo2, 1e-9)

	h, ok := Hemodynamics(ir, red, nir)
	require.True(t, ok)
	od := math.Log(51000.0 / 50000.0)
	oxygenated := (od*1.05 - od*0.78) * 500
	deoxygenated := (od*1.10 - od*0.69) * 500
	assert.InDelta(t, oxygenated, h.Oxygenated, 1e-9)
	assert.InDelta(t, deoxygenated, h.Deoxygenated, 1e-9)
	assert.InDelta(t, 39.70588235, h.TissueSaturationIndex, 1e-6)
}

func TestHemodynamicsUndefined(t *testing.T) {
	ok64 := constant(50000, 64)
	for name, input := range map[string][3][]float64{
		"short ir":     {constant(50000, 63), ok64, ok64},
		"short red":    {ok64, constant(50000, 63), ok64},
		"short nir":    {ok64, ok64, constant(50000, 63)},
		"zero ir":      {constant(0, 64), ok64, ok64},
		"zero red":     {ok64, constant(0, 64), ok64},
		"negative nir": {ok64, ok64, constant(-1, 64)},
	} {
		_, ok := Hemodynamics(input[0], input[1], input[2])
		assert.False(t, ok, name)
	}
}

func TestStd(t *testing.T) {
	assert.Equal(t, 0.0, Std(nil))
	assert.Equal(t, 0.0, Std(constant(7, 10)))
	assert.InDelta(t, 5.0, Std(square(5, 10)), 1e-12)
	assert.InDelta(t, 2.0, Std([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
}

func TestStdQuality(t *testing.T) {
	assert.Equal(t, QualityBad, StdQuality(constant(3, 64)))
	assert.Equal(t, QualityBad, StdQuality(square(0.5, 64)))
	assert.Equal(t, QualityFair, StdQuality(square(1, 64)))
	assert.Equal(t, QualityFair, StdQuality(square(9.5, 64)))
	assert.Equal(t, QualityGood, StdQuality(square(10, 64)))
}

type stubAnalyzer struct {
	err     error
	railed  float64
	predict []float64
	bands   BandPowers
	calls   int
}

func (s *stubAnalyzer) RailedPercentage(data []float64, gain int) (float64, error) {
	s.calls++
	return s.railed, s.err
}

func (s *stubAnalyzer) Predict(metric Metric, data []float64) ([]float64, error) {
	s.calls++
	return s.predict, s.err
}

func (s *stubAnalyzer) BandPowers(data []float64, samplingRate int) (BandPowers, error) {
	s.calls++
	return s.bands, s.err
}

func TestSignalQuality(t *testing.T) {
	a := &stubAnalyzer{railed: 0.1}
	assert.InDelta(t, 90.0, SignalQuality(a, constant(0, 32)), 1e-9)

	a.railed = 1.5
	assert.Equal(t, 0.0, SignalQuality(a, constant(0, 32)))
	a.railed = -1
	assert.Equal(t, 100.0, SignalQuality(a, constant(0, 32)))
}

func TestSignalQualityShortInput(t *testing.T) {
	a := &stubAnalyzer{railed: 1}
	assert.Equal(t, QualityGood, SignalQuality(a, constant(0, 31)))
	assert.Equal(t, 0, a.calls)
}

func TestSignalQualityFallback(t *testing.T) {
	a := &stubAnalyzer{err: ErrAnalyzer{What: "failed"}}
	assert.Equal(t, QualityBad, SignalQuality(a, constant(0, 64)))
	assert.Equal(t, QualityFair, SignalQuality(a, square(5, 64)))
	assert.Equal(t, QualityGood, SignalQuality(a, square(50, 64)))

	assert.Equal(t, QualityFair, SignalQuality(NopAnalyzer{}, square(5, 64)))
	assert.Equal(t, QualityFair, SignalQuality(nil, square(5, 64)))
}

func TestSignalQualityNaN(t *testing.T) {
	a := &stubAnalyzer{railed: math.NaN()}
	assert.Equal(t, QualityBad, SignalQuality(a, constant(0, 64)))
	assert.Equal(t, QualityFair, SignalQuality(a, square(5, 64)))
	assert.Equal(t, QualityGood, SignalQuality(a, square(50, 64)))
}

func TestPredict(t *testing.T) {
	a := &stubAnalyzer{predict: []float64{42, 7}}
	score, ok := Predict(a, MetricMindfulness, constant(1, 256))
	require.True(t, ok)
	assert.Equal(t, 42.0, score)

	a.predict = []float64{-3}
	score, ok = Predict(a, MetricRestfulness, constant(1, 256))
	require.True(t, ok)
	assert.Equal(t, 0.0, score)

	a.predict = nil
	_, ok = Predict(a, MetricRestfulness, constant(1, 256))
	assert.False(t, ok)

	a.predict = []float64{math.NaN()}
	_, ok = Predict(a, MetricRestfulness, constant(1, 256))
	assert.False(t, ok)

	calls := a.calls
	_, ok = Predict(a, MetricMindfulness, constant(1, 255))
	assert.False(t, ok)
	assert.Equal(t, calls, a.calls)

	_, ok = Predict(NopAnalyzer{}, MetricMindfulness, constant(1, 256))
	assert.False(t, ok)
}

func TestBandPowersOf(t *testing.T) {
	bands := BandPowers{Delta: 5, Theta: 4, Alpha: 3, Beta: 2, Gamma: 1}
	a := &stubAnalyzer{bands: bands}
	bp, ok := BandPowersOf(a, constant(1, 256), DefaultSamplingRate)
	require.True(t, ok)
	assert.Equal(t, bands, bp)

	_, ok = BandPowersOf(a, constant(1, 100), DefaultSamplingRate)
	assert.False(t, ok)

	a.err = ErrAnalyzerUnavailable
	_, ok = BandPowersOf(a, constant(1, 256), DefaultSamplingRate)
	assert.False(t, ok)
}

func TestMetricString(t *testing.T) {
	assert.Equal(t, "mindfulness", MetricMindfulness.String())
	assert.Equal(t, "restfulness", MetricRestfulness.String())
	assert.Equal(t, "unknown", Metric(9).String())
}
