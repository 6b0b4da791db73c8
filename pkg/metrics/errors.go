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
	"fmt"
)

// ErrAnalyzer returned by analyzers when the external computation fails
type ErrAnalyzer struct {
	What string
}

func (e ErrAnalyzer) Error() string {
	return fmt.Sprintf("Error while running external analysis: %s", e.What)
}

// ErrAnalyzerUnavailable returned by NopAnalyzer
var ErrAnalyzerUnavailable = ErrAnalyzer{What: "analyzer is not available"}
