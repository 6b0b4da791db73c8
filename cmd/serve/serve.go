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

package serve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-muse/pkg/config"
	"jinr.ru/greenlab/go-muse/pkg/log"
	"jinr.ru/greenlab/go-muse/pkg/muse"
	"jinr.ru/greenlab/go-muse/pkg/srv"
	"jinr.ru/greenlab/go-muse/pkg/state"
)

const (
	AddressOptionName = "address"
	PortOptionName    = "port"
	NoDBOptionName    = "no-db"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	var address string
	var port int
	var noDB bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start decode API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.Address = address
			}
			if port != 0 {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			model, err := cfg.GetModel()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var st *state.State
			if !noDB {
				if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
					return err
				}
				st, err = state.NewState(ctx, cfg.DBPath)
				if err != nil {
					return fmt.Errorf("open device database %s: %w", cfg.DBPath, err)
				}
				defer st.Close()
				log.Info("Device database: %s", cfg.DBPath)
			}

			agg := muse.NewAggregator(
				muse.WithDefaultModel(model),
				muse.WithSamplingRate(cfg.SamplingRate),
			)
			server := srv.NewApiServer(ctx, cfg, agg, st)
			if cfg.DeviceName != "" {
				if err := server.InitDevice(cfg.DeviceName); err != nil {
					return err
				}
			}
			return server.Run()
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", fmt.Sprintf("Address to bind. E.g. %s", config.DefaultApiAddress))
	cmd.Flags().IntVar(&port, PortOptionName, 0, fmt.Sprintf("Port number to bind. E.g. %d", config.DefaultApiPort))
	cmd.Flags().BoolVar(&noDB, NoDBOptionName, false, "Do not open device database")

	return cmd
}
