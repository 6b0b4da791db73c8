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

package decode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-muse/pkg/capture"
	"jinr.ru/greenlab/go-muse/pkg/command"
	"jinr.ru/greenlab/go-muse/pkg/config"
	"jinr.ru/greenlab/go-muse/pkg/device"
	"jinr.ru/greenlab/go-muse/pkg/log"
	"jinr.ru/greenlab/go-muse/pkg/muse"
)

const (
	RemoteOptionName = "remote"
	OutputOptionName = "output"
	ModelOptionName  = "model"

	OutputYAML = "yaml"
	OutputJSON = "json"
)

type decodeFunc func(channel int, payload []byte) ([]*muse.Frame, error)

func localDecoder(cfg *config.Config, modelName string) (decodeFunc, error) {
	defaultModel, err := cfg.GetModel()
	if err != nil {
		return nil, err
	}
	agg := muse.NewAggregator(
		muse.WithDefaultModel(defaultModel),
		muse.WithSamplingRate(cfg.SamplingRate),
	)
	if modelName != "" {
		model, err := device.ParseModel(modelName)
		if err != nil {
			return nil, err
		}
		agg.Init(model)
	}
	return func(channel int, payload []byte) ([]*muse.Frame, error) {
		return agg.Parse(channel, payload), nil
	}, nil
}

func remoteDecoder(cfg *config.Config, modelName string) (decodeFunc, error) {
	apiClient := command.NewApiClient(cfg)
	if modelName != "" {
		if err := apiClient.Init(modelName); err != nil {
			return nil, err
		}
	}
	return apiClient.Packet, nil
}

func printFrames(out io.Writer, frames []*muse.Frame, output string) error {
	if frames == nil {
		frames = []*muse.Frame{}
	}
	var data []byte
	var err error
	switch output {
	case OutputJSON:
		data, err = json.MarshalIndent(frames, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(frames)
	}
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func NewCommand(cfg *config.Config) *cobra.Command {
	var remote bool
	var output, modelName string
	cmd := &cobra.Command{
		Use:   "decode <capture>",
		Short: "Decode raw packet capture",
		Long: `Replay raw packets from the capture file and print decoded frames.
Files with .txt or .hex extension are read as text lines "<channel> <hex payload>",
any other file as a stream of msgpack records.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != OutputYAML && output != OutputJSON {
				return fmt.Errorf("wrong output format %q, must be one of: %s, %s", output, OutputYAML, OutputJSON)
			}
			var decode decodeFunc
			var err error
			if remote {
				decode, err = remoteDecoder(cfg, modelName)
			} else {
				decode, err = localDecoder(cfg, modelName)
			}
			if err != nil {
				return err
			}

			reader, err := capture.Open(args[0])
			if err != nil {
				return err
			}
			defer reader.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			var frames []*muse.Frame
			count, err := capture.Replay(ctx, reader, func(channel int, payload []byte) error {
				decoded, err := decode(channel, payload)
				if err != nil {
					return err
				}
				frames = append(frames, decoded...)
				return nil
			})
			if err != nil {
				return fmt.Errorf("replay %s: %w", args[0], err)
			}
			log.Info("Replayed %d packets, decoded %d frames", count, len(frames))
			return printFrames(cmd.OutOrStdout(), frames, output)
		},
	}
	cmd.Flags().BoolVar(&remote, RemoteOptionName, false, "Decode with the running API server")
	cmd.Flags().StringVar(&output, OutputOptionName, OutputYAML, "Output format. Must be one of: yaml, json")
	cmd.Flags().StringVar(&modelName, ModelOptionName, "",
		"Headband model. If not set the configured model is selected on the first packet")

	return cmd
}
