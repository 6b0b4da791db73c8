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

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-muse/pkg/command"
	"jinr.ru/greenlab/go-muse/pkg/config"
	"jinr.ru/greenlab/go-muse/pkg/layers"
)

const (
	RemoteOptionName = "remote"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "command",
		Short: "Work with headband control commands",
	}
	cmd.AddCommand(NewEncodeCommand(cfg))
	return cmd
}

func NewEncodeCommand(cfg *config.Config) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "encode <text>",
		Short: "Print hex of the command packet",
		Example: `
Encode preset selection
# go-muse command encode p21`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var packet []byte
			if remote {
				var err error
				packet, err = command.NewApiClient(cfg).Command(args[0])
				if err != nil {
					return err
				}
			} else {
				packet = layers.EncodeCommand(args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(packet))
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, RemoteOptionName, false, "Encode with the running API server")
	return cmd
}
