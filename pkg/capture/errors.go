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

package capture

import (
	"fmt"
)

type ErrCaptureLine struct {
	Line int
	What string
}

func (e ErrCaptureLine) Error() string {
	return fmt.Sprintf("Error while reading capture line %d: %s", e.Line, e.What)
}

type ErrCaptureRecord struct {
	What string
}

func (e ErrCaptureRecord) Error() string {
	return fmt.Sprintf("Error while decoding capture record: %s", e.What)
}
