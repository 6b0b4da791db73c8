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
	"errors"
	"io"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-muse/pkg/capture"
	"jinr.ru/greenlab/go-muse/pkg/log"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Work with raw packet captures",
	}
	cmd.AddCommand(NewConvertCommand())
	return cmd
}

func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <from> <to>",
		Short: "Convert capture between msgpack and text formats",
		Long: `Copy every record of the capture into a new file.
Formats are selected by file extension: .txt and .hex are text, anything else is msgpack.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := capture.Open(args[0])
			if err != nil {
				return err
			}
			defer reader.Close()
			writer, err := capture.Create(args[1])
			if err != nil {
				return err
			}

			count := 0
			for {
				record, err := reader.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					writer.Close()
					return err
				}
				if err := writer.Write(record); err != nil {
					writer.Close()
					return err
				}
				count++
			}
			log.Info("Converted %d records: %s -> %s", count, args[0], args[1])
			return writer.Close()
		},
	}
	return cmd
}
