package main

import (
	"github.com/spf13/cobra"

	"github.com/HerodesVe/fsr-go/internal/services"
	"github.com/HerodesVe/fsr-go/internal/store"
)

func (a *app) ubigeo() *store.Ubigeo {
	return a.store.Ubigeo(services.NewUbigeoService(a.client))
}

func newServiciosCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "servicios",
		Short: "List the service catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := a.store.ServiceDefinitions(services.NewServiceDefinitionService(a.client)).List(cmd.Context())
			if err != nil {
				return err
			}
			if a.output == "yaml" {
				return printYAML(defs)
			}
			rows := make([][]string, 0, len(defs))
			for _, d := range defs {
				rows = append(rows, []string{d.Code, d.Name, d.Resource, d.Price.StringFixed(2)})
			}
			table([]string{"CODIGO", "NOMBRE", "RECURSO", "PRECIO"}, rows)
			return nil
		},
	}
}

func newUbigeoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ubigeo",
		Short: "Geography lookups",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "departments",
			Short: "List departments",
			RunE: func(cmd *cobra.Command, args []string) error {
				deps, err := a.ubigeo().Departments(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(deps))
				for _, d := range deps {
					rows = append(rows, []string{d.ID, d.Name})
				}
				table([]string{"ID", "DEPARTAMENTO"}, rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "provinces <department-id>",
			Short: "List provinces of a department",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				provs, err := a.ubigeo().Provinces(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(provs))
				for _, p := range provs {
					rows = append(rows, []string{p.ID, p.Name})
				}
				table([]string{"ID", "PROVINCIA"}, rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "districts <province-id>",
			Short: "List districts of a province",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dists, err := a.ubigeo().Districts(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(dists))
				for _, d := range dists {
					rows = append(rows, []string{d.ID, d.Name})
				}
				table([]string{"ID", "DISTRITO"}, rows)
				return nil
			},
		},
	)
	return cmd
}
