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

package model

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-muse/pkg/config"
	"jinr.ru/greenlab/go-muse/pkg/device"
	"jinr.ru/greenlab/go-muse/pkg/state"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Infer headband models and manage device database",
	}
	cmd.AddCommand(NewInferCommand())
	cmd.AddCommand(NewSetCommand(cfg))
	cmd.AddCommand(NewGetCommand(cfg))
	cmd.AddCommand(NewListCommand(cfg))
	return cmd
}

func openState(cmd *cobra.Command, cfg *config.Config) (*state.State, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return state.NewState(ctx, cfg.DBPath)
}

func NewInferCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infer <name>",
		Short: "Infer model from advertised device name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), device.ModelFromName(args[0]))
			return nil
		},
	}
	return cmd
}

// modelNames completes the model argument of set
func modelNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, model := range device.Models {
		names = append(names, model.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func NewSetCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "set <device> <model>",
		Short:             "Store model for device",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: modelNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := device.ParseModel(args[1])
			if err != nil {
				return err
			}
			st, err := openState(cmd, cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			return st.SetModel(args[0], model)
		},
	}
	return cmd
}

func NewGetCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <device>",
		Short: "Print stored model for device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openState(cmd, cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			model, err := st.GetModel(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), model)
			return nil
		},
	}
	return cmd
}

func NewListCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all stored devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openState(cmd, cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			records, err := st.GetAll()
			if err != nil {
				return err
			}
			for _, record := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", record.Name, record.Model)
			}
			return nil
		},
	}
	return cmd
}
