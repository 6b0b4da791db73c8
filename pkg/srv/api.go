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

// go-muse API
//
// # RESTful APIs to decode raw Muse packets
//
// Schemes: http
// Host: localhost:8000
// Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package srv

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-muse/pkg/config"
	"jinr.ru/greenlab/go-muse/pkg/device"
	"jinr.ru/greenlab/go-muse/pkg/layers"
	"jinr.ru/greenlab/go-muse/pkg/log"
	"jinr.ru/greenlab/go-muse/pkg/muse"
	"jinr.ru/greenlab/go-muse/pkg/state"
)

// ApiServer exposes one aggregator over HTTP
type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	agg   *muse.Aggregator
	state *state.State
}

// NewApiServer creates the server, st may be nil in which case device handlers
// respond with 503 and init by device name falls back to name inference
func NewApiServer(ctx context.Context, cfg *config.Config, agg *muse.Aggregator, st *state.State) *ApiServer {
	log.Info("Initializing API server with address: %s port: %d", cfg.Address, cfg.Port)
	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		agg:     agg,
		state:   st,
	}
	s.configureRouter()
	return s
}

// Handler returns the router wrapped with access logging and panic recovery
func (s *ApiServer) Handler() http.Handler {
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.LoggingHandler(os.Stderr, s.Router),
	)
}

// Run ...
func (s *ApiServer) Run() error {
	addr := fmt.Sprintf("%s:%d", s.Address, s.Port)
	log.Info("Starting API server: %s", addr)
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    addr,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-s.Context.Done():
		log.Info("Stopping API server")
		return httpServer.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	// swagger:operation POST /init init
	// ---
	// summary: select the model, drops all accumulated packets
	subRouter.HandleFunc("/init", s.handleInit()).Methods("POST")
	// swagger:operation POST /packet packet
	// ---
	// summary: decode a single packet, responds with zero or one frame
	subRouter.HandleFunc("/packet", s.handlePacket()).Methods("POST")
	// swagger:operation POST /batch batch
	// ---
	// summary: decode packets received on channels 0, 1, ..., responds with at least one frame
	subRouter.HandleFunc("/batch", s.handleBatch()).Methods("POST")
	subRouter.HandleFunc("/model", s.handleModel()).Methods("GET")
	subRouter.HandleFunc("/command", s.handleCommand()).Methods("POST")
	subRouter.HandleFunc("/state", s.handleState()).Methods("GET")
	subRouter.HandleFunc("/devices", s.handleDevices()).Methods("GET")
	subRouter.HandleFunc("/devices/{name}", s.handleDeviceSet()).Methods("POST")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}

func writeFrames(w http.ResponseWriter, frames []*muse.Frame) {
	if frames == nil {
		frames = []*muse.Frame{}
	}
	writeJSON(w, frames)
}

// resolveModel picks the model for the init request
func (s *ApiServer) resolveModel(req *InitRequest) (device.Model, error) {
	if req.Model != "" {
		return device.ParseModel(req.Model)
	}
	if req.Device == "" {
		return s.Config.GetModel()
	}
	if s.state != nil {
		model, err := s.state.GetModel(req.Device)
		if err == nil {
			return model, nil
		}
		var notFound state.ErrDeviceNotFound
		if !errors.As(err, &notFound) {
			return device.ModelUnknown, err
		}
	}
	return device.ModelFromName(req.Device), nil
}

// InitDevice selects the model for the headband with the advertised name,
// the device database wins over name inference
func (s *ApiServer) InitDevice(name string) error {
	model, err := s.resolveModel(&InitRequest{Device: name})
	if err != nil {
		return err
	}
	log.Info("Device %s uses model %s", name, model)
	s.agg.Init(model)
	return nil
}

func (s *ApiServer) handleInit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &InitRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		model, err := s.resolveModel(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Debug("Handling init request: model: %s", model)
		s.agg.Init(model)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *ApiServer) handlePacket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &PacketRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, err := hex.DecodeString(req.Data)
		if err != nil {
			http.Error(w, ErrHexPayload{What: err.Error()}.Error(), http.StatusBadRequest)
			return
		}
		writeFrames(w, s.agg.Parse(req.Channel, data))
	}
}

func (s *ApiServer) handleBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &BatchRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		payloads := make([][]byte, len(req.Packets))
		for i, packet := range req.Packets {
			data, err := hex.DecodeString(packet)
			if err != nil {
				http.Error(w, ErrHexPayload{Index: i, What: err.Error()}.Error(), http.StatusBadRequest)
				return
			}
			payloads[i] = data
		}
		writeFrames(w, s.agg.ParseBatch(payloads))
	}
}

func (s *ApiServer) handleModel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		writeJSON(w, &ModelResponse{Model: device.ModelFromName(name).String()})
	}
}

func (s *ApiServer) handleCommand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &CommandRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, &CommandResponse{Packet: hex.EncodeToString(layers.EncodeCommand(req.Command))})
	}
}

func (s *ApiServer) handleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, model := s.agg.Status()
		resp := &StateResponse{State: st.String()}
		if st == muse.StateReady {
			resp.Model = model.String()
		}
		writeJSON(w, resp)
	}
}

func (s *ApiServer) handleDevices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.state == nil {
			http.Error(w, ErrNoDeviceDatabase{}.Error(), http.StatusServiceUnavailable)
			return
		}
		records, err := s.state.GetAll()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []*state.DeviceRecord{}
		}
		writeJSON(w, records)
	}
}

func (s *ApiServer) handleDeviceSet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.state == nil {
			http.Error(w, ErrNoDeviceDatabase{}.Error(), http.StatusServiceUnavailable)
			return
		}
		name := mux.Vars(r)["name"]
		req := &DeviceRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		model, err := device.ParseModel(req.Model)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.state.SetModel(name, model); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
