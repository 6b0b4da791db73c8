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
	"sync"
	"time"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-muse/pkg/device"
	"jinr.ru/greenlab/go-muse/pkg/layers"
	"jinr.ru/greenlab/go-muse/pkg/log"
	"jinr.ru/greenlab/go-muse/pkg/metrics"
)

const (
	// DefaultModel is selected when a packet arrives before Init
	DefaultModel = device.ModelMuseS
	// MinReadyOpticalChannels is the number of non empty optical buffers which completes an optical frame
	MinReadyOpticalChannels = 2
)

type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

type Option func(*Aggregator)

// WithAnalyzer sets the external library used for quality, classifiers and band powers
func WithAnalyzer(analyzer metrics.Analyzer) Option {
	return func(a *Aggregator) {
		a.analyzer = analyzer
	}
}

// WithClock replaces time.Now for frame timestamps
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// WithDefaultModel sets the model used when the first packet arrives before Init
func WithDefaultModel(model device.Model) Option {
	return func(a *Aggregator) {
		a.defaultModel = model
	}
}

// WithSamplingRate sets EEG sampling rate passed to band power computation
func WithSamplingRate(rate int) Option {
	return func(a *Aggregator) {
		if rate > 0 {
			a.samplingRate = rate
		}
	}
}

// Aggregator accumulates per channel packets of one headband session and
// emits frames when enough channels are received.
// All methods are safe for concurrent use, packets are processed one at a time.
type Aggregator struct {
	mu sync.Mutex

	state State
	model device.Model
	caps  device.Capabilities

	defaultModel device.Model
	analyzer     metrics.Analyzer
	now          func() time.Time
	samplingRate int

	eeg      [device.MaxEEGChannels][]float64
	received [device.MaxEEGChannels]bool
	optical  [device.MaxOpticalChannels][]float64
	accel    [3]float64
	gyro     [3]float64
}

func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		state:        StateUninitialized,
		defaultModel: DefaultModel,
		analyzer:     metrics.NopAnalyzer{},
		now:          time.Now,
		samplingRate: metrics.DefaultSamplingRate,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init selects the model and discards everything accumulated so far
func (a *Aggregator) Init(model device.Model) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.init(model)
	log.Info("Aggregator is initialized for model %s", model)
}

func (a *Aggregator) init(model device.Model) {
	a.model = model
	a.caps = device.Lookup(model)
	for i := range a.eeg {
		a.eeg[i] = nil
		a.received[i] = false
	}
	for i := range a.optical {
		a.optical[i] = nil
	}
	a.accel = [3]float64{}
	a.gyro = [3]float64{}
	a.state = StateReady
}

// Status returns the current state and the model, the model is meaningful only in StateReady
func (a *Aggregator) Status() (State, device.Model) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state, a.model
}

// Parse decodes a single 20 byte packet received on the channel.
// It returns at most one frame. Malformed packets and packets on unknown
// channels are dropped without changing the state.
func (a *Aggregator) Parse(channel int, payload []byte) []*Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.parse(channel, payload)
}

func (a *Aggregator) parse(channel int, payload []byte) []*Frame {
	packet := gopacket.NewPacket(payload, layers.MuseLayerType, gopacket.Default)
	if errLayer := packet.ErrorLayer(); errLayer != nil {
		log.Debug("Drop packet on channel %d: %s", channel, errLayer.Error())
		return nil
	}
	ml, ok := packet.Layer(layers.MuseLayerType).(*layers.MuseLayer)
	if !ok {
		return nil
	}

	if a.state == StateUninitialized {
		log.Debug("Packet before initialization, fallback to model %s", a.defaultModel)
		a.init(a.defaultModel)
	}

	var frame *Frame
	ch := Classify(channel, a.caps)
	switch ch.Kind {
	case KindEEG:
		frame = a.parseEEG(ch.Index, ml)
	case KindAccelerometer:
		frame = a.parseAccel(ml)
	case KindGyroscope:
		frame = a.parseGyro(ml)
	case KindOptical:
		frame = a.parseOptical(ch.Index, ml)
	default:
		log.Debug("Drop packet on unrecognized channel %d for model %s", channel, a.model)
	}

	if frame == nil {
		return nil
	}
	log.Debug("Emit frame %v seq %d", frame.Types, frame.Sequence)
	return []*Frame{frame}
}

func (a *Aggregator) parseEEG(index int, ml *layers.MuseLayer) *Frame {
	n := a.caps.EEGChannels
	if index >= n {
		return nil
	}

	a.eeg[index] = append(a.eeg[index], layers.DecodeEEGSamples(ml.Samples, a.caps.Resolution)...)
	a.received[index] = true

	received := 0
	for i := 0; i < n; i++ {
		if a.received[i] {
			received++
		}
	}
	if received < n {
		return nil
	}

	eeg := make([][]float64, n)
	var flat []float64
	for i := 0; i < n; i++ {
		eeg[i] = append([]float64{}, a.eeg[i]...)
		flat = append(flat, a.eeg[i]...)
	}

	frame := &Frame{
		EEG:           eeg,
		Accel:         a.accel,
		Gyro:          a.gyro,
		Timestamp:     a.now(),
		Sequence:      ml.Seq,
		Types:         []PacketType{PacketTypeEEG},
		SignalQuality: metrics.SignalQuality(a.analyzer, flat),
		Mindfulness:   optional(metrics.Predict(a.analyzer, metrics.MetricMindfulness, flat)),
		Restfulness:   optional(metrics.Predict(a.analyzer, metrics.MetricRestfulness, flat)),
	}
	if bp, ok := metrics.BandPowersOf(a.analyzer, flat, a.samplingRate); ok {
		frame.BandPowers = &bp
	}

	for i := range a.eeg {
		a.eeg[i] = nil
		a.received[i] = false
	}
	return frame
}

func (a *Aggregator) parseAccel(ml *layers.MuseLayer) *Frame {
	if xyz, ok := layers.DecodeMotionSample(ml.Samples, device.AccelScaleFactor); ok {
		a.accel = xyz
	}
	return &Frame{
		Accel:         a.accel,
		Timestamp:     a.now(),
		Sequence:      ml.Seq,
		Types:         []PacketType{PacketTypeAccel},
		SignalQuality: metrics.QualityGood,
	}
}

func (a *Aggregator) parseGyro(ml *layers.MuseLayer) *Frame {
	if xyz, ok := layers.DecodeMotionSample(ml.Samples, device.GyroScaleFactor); ok {
		a.gyro = xyz
	}
	return &Frame{
		Gyro:          a.gyro,
		Timestamp:     a.now(),
		Sequence:      ml.Seq,
		Types:         []PacketType{PacketTypeGyro},
		SignalQuality: metrics.QualityGood,
	}
}

func (a *Aggregator) parseOptical(index int, ml *layers.MuseLayer) *Frame {
	count := a.caps.OpticalChannels
	if !a.caps.HasOptical || index >= count {
		return nil
	}

	// the latest packet of a channel replaces its samples
	a.optical[index] = layers.DecodeOpticalSamples(ml.Samples)

	ready := 0
	for i := 0; i < count; i++ {
		if len(a.optical[i]) > 0 {
			ready++
		}
	}
	if ready < MinReadyOpticalChannels {
		return nil
	}

	frame := &Frame{
		IR:            append([]float64{}, a.optical[0]...),
		Timestamp:     a.now(),
		Sequence:      ml.Seq,
		SignalQuality: metrics.QualityGood,
	}
	if count >= 2 {
		frame.Red = append([]float64{}, a.optical[1]...)
	}
	if count >= 3 {
		frame.NIR = append([]float64{}, a.optical[2]...)
	}

	frame.SpO2 = optional(metrics.SpO2(frame.IR, frame.Red))
	if a.caps.HasNearInfrared && count >= 3 {
		if h, ok := metrics.Hemodynamics(frame.IR, frame.Red, frame.NIR); ok {
			frame.Hemodynamic = &h
		}
	}
	if a.caps.HasNearInfrared {
		frame.Types = []PacketType{PacketTypeFNIRS}
	} else {
		frame.Types = []PacketType{PacketTypePPG}
	}

	for i := range a.optical {
		a.optical[i] = nil
	}
	return frame
}
