package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HerodesVe/fsr-go/internal/models"
	"github.com/HerodesVe/fsr-go/internal/services"
	"github.com/HerodesVe/fsr-go/internal/store"
)

func (a *app) clients() *store.Clients {
	return a.store.Clients(services.NewClientService(a.client))
}

func newClientsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage clients",
	}
	cmd.AddCommand(newClientsListCmd(a), newClientsCreateCmd(a), newClientsDeleteCmd(a))
	return cmd
}

func newClientsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := a.clients().List(cmd.Context())
			if err != nil {
				return err
			}
			if a.output == "yaml" {
				return printYAML(clients)
			}
			rows := make([][]string, 0, len(clients))
			for _, c := range clients {
				doc := c.DocumentNumber
				if c.ClientType == models.ClientJuridical {
					doc = c.RUC
				}
				rows = append(rows, []string{c.ID, string(c.ClientType), c.DisplayName(), doc})
			}
			table([]string{"ID", "TIPO", "NOMBRE", "DOCUMENTO"}, rows)
			return nil
		},
	}
}

func newClientsCreateCmd(a *app) *cobra.Command {
	var (
		clientType string
		names      string
		paternal   string
		maternal   string
		docType    string
		docNumber  string
		business   string
		ruc        string
		email      string
		phone      string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := &models.Client{
				ClientType:      models.ClientType(clientType),
				Names:           names,
				PaternalSurname: paternal,
				MaternalSurname: maternal,
				DocumentType:    docType,
				DocumentNumber:  docNumber,
				BusinessName:    business,
				RUC:             ruc,
				Email:           email,
				Phone:           phone,
			}
			created, err := a.clients().Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			if a.output == "yaml" {
				return printYAML(created)
			}
			fmt.Printf("Cliente %s creado (%s)\n", created.DisplayName(), created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&clientType, "type", "natural", "natural or juridical")
	cmd.Flags().StringVar(&names, "names", "", "given names (natural)")
	cmd.Flags().StringVar(&paternal, "paternal-surname", "", "paternal surname (natural)")
	cmd.Flags().StringVar(&maternal, "maternal-surname", "", "maternal surname (natural)")
	cmd.Flags().StringVar(&docType, "doc-type", "DNI", "identity document type (natural)")
	cmd.Flags().StringVar(&docNumber, "doc-number", "", "identity document number (natural)")
	cmd.Flags().StringVar(&business, "business-name", "", "business name (juridical)")
	cmd.Flags().StringVar(&ruc, "ruc", "", "RUC (juridical)")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "contact phone")
	return cmd
}

func newClientsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.clients().Delete(cmd.Context(), args[0])
		},
	}
}
