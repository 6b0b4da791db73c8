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

package command

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-muse/pkg/config"
	"jinr.ru/greenlab/go-muse/pkg/muse"
	"jinr.ru/greenlab/go-muse/pkg/srv"
	"jinr.ru/greenlab/go-muse/pkg/state"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("%s/api", cfg.ApiURL()),
	}
}

func (c *ApiClient) url(path string) string {
	return fmt.Sprintf("%s/%s", c.ApiPrefix, path)
}

func checkStatus(r *req.Resp, expected int) error {
	if r.Response().StatusCode != expected {
		return ErrApi{Status: r.Response().Status, Message: strings.TrimSpace(r.String())}
	}
	return nil
}

// Init selects the model of the server aggregator
func (c *ApiClient) Init(model string) error {
	return c.init(&srv.InitRequest{Model: model})
}

// InitDevice selects the model of the server aggregator by the advertised device name
func (c *ApiClient) InitDevice(name string) error {
	return c.init(&srv.InitRequest{Device: name})
}

func (c *ApiClient) init(initReq *srv.InitRequest) error {
	r, err := req.Post(c.url("init"), req.BodyJSON(initReq))
	if err != nil {
		return err
	}
	return checkStatus(r, http.StatusNoContent)
}

// Packet sends a single packet for decoding
func (c *ApiClient) Packet(channel int, data []byte) ([]*muse.Frame, error) {
	packet := &srv.PacketRequest{
		Channel: channel,
		Data:    hex.EncodeToString(data),
	}
	r, err := req.Post(c.url("packet"), req.BodyJSON(packet))
	if err != nil {
		return nil, err
	}
	return toFrames(r)
}

// Batch sends packets received on channels 0, 1, ... for decoding
func (c *ApiClient) Batch(payloads [][]byte) ([]*muse.Frame, error) {
	batch := &srv.BatchRequest{Packets: make([]string, len(payloads))}
	for i, payload := range payloads {
		batch.Packets[i] = hex.EncodeToString(payload)
	}
	r, err := req.Post(c.url("batch"), req.BodyJSON(batch))
	if err != nil {
		return nil, err
	}
	return toFrames(r)
}

func toFrames(r *req.Resp) ([]*muse.Frame, error) {
	if err := checkStatus(r, http.StatusOK); err != nil {
		return nil, err
	}
	var frames []*muse.Frame
	if err := r.ToJSON(&frames); err != nil {
		return nil, err
	}
	return frames, nil
}

// Model infers the model name from the advertised device name
func (c *ApiClient) Model(name string) (string, error) {
	r, err := req.Get(c.url("model"), req.Param{"name": name})
	if err != nil {
		return "", err
	}
	if err := checkStatus(r, http.StatusOK); err != nil {
		return "", err
	}
	model := &srv.ModelResponse{}
	if err := r.ToJSON(model); err != nil {
		return "", err
	}
	return model.Model, nil
}

// Command returns the encoded command packet
func (c *ApiClient) Command(command string) ([]byte, error) {
	r, err := req.Post(c.url("command"), req.BodyJSON(&srv.CommandRequest{Command: command}))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(r, http.StatusOK); err != nil {
		return nil, err
	}
	resp := &srv.CommandResponse{}
	if err := r.ToJSON(resp); err != nil {
		return nil, err
	}
	return hex.DecodeString(resp.Packet)
}

// State ...
func (c *ApiClient) State() (*srv.StateResponse, error) {
	r, err := req.Get(c.url("state"))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(r, http.StatusOK); err != nil {
		return nil, err
	}
	resp := &srv.StateResponse{}
	if err := r.ToJSON(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SetDeviceModel stores the model for the device in the server database
func (c *ApiClient) SetDeviceModel(name, model string) error {
	r, err := req.Post(c.url("devices/"+name), req.BodyJSON(&srv.DeviceRequest{Model: model}))
	if err != nil {
		return err
	}
	return checkStatus(r, http.StatusNoContent)
}

// Devices ...
func (c *ApiClient) Devices() ([]*state.DeviceRecord, error) {
	r, err := req.Get(c.url("devices"))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(r, http.StatusOK); err != nil {
		return nil, err
	}
	var records []*state.DeviceRecord
	if err := r.ToJSON(&records); err != nil {
		return nil, err
	}
	return records, nil
}
