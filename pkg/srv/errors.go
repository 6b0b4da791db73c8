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

import (
	"fmt"
)

// ErrHexPayload returned when a packet in the request is not a hexadecimal string
type ErrHexPayload struct {
	Index int
	What  string
}

func (e ErrHexPayload) Error() string {
	return fmt.Sprintf("Wrong hexadecimal payload %d: %s", e.Index, e.What)
}

// ErrNoDeviceDatabase returned by device handlers when the server runs without device database
type ErrNoDeviceDatabase struct{}

func (e ErrNoDeviceDatabase) Error() string {
	return "Device database is not configured"
}
