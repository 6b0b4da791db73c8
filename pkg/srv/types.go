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

package srv

// InitRequest selects the model of the aggregator.
// When Model is empty the model is taken from the device database
// or inferred from the Device name.
type InitRequest struct {
	Model  string `json:"model,omitempty"`
	Device string `json:"device,omitempty"`
}

// PacketRequest is a single packet, Data is hexadecimal
type PacketRequest struct {
	Channel int    `json:"channel"`
	Data    string `json:"data"`
}

// BatchRequest holds hexadecimal packets, packet i is received on channel i
type BatchRequest struct {
	Packets []string `json:"packets"`
}

type ModelResponse struct {
	Model string `json:"model"`
}

type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResponse holds the hexadecimal encoded command packet
type CommandResponse struct {
	Packet string `json:"packet"`
}

type StateResponse struct {
	State string `json:"state"`
	Model string `json:"model,omitempty"`
}

type DeviceRequest struct {
	Model string `json:"model"`
}
