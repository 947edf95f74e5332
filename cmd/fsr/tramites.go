package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HerodesVe/fsr-go/internal/api"
	"github.com/HerodesVe/fsr-go/internal/services"
	"github.com/HerodesVe/fsr-go/internal/store"
	"github.com/HerodesVe/fsr-go/internal/workflows"
)

func (a *app) workflows(kind string) (*store.Workflows, error) {
	schema, ok := workflows.ByKind(kind)
	if !ok {
		return nil, fmt.Errorf("unknown workflow kind %q (known: %s)", kind, strings.Join(workflows.Kinds(), ", "))
	}
	svc := services.NewWorkflowService(a.client, schema.Resource)
	return a.store.Workflows(svc), nil
}

func newTramitesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tramites",
		Short: "Manage permit workflows",
	}
	cmd.AddCommand(newTramitesListCmd(a), newTramitesShowCmd(a), newTramitesUploadCmd(a), newTramitesKindsCmd(a))
	return cmd
}

func newTramitesKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the known workflow kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range workflows.Kinds() {
				schema, _ := workflows.ByKind(k)
				fmt.Printf("%-24s %s\n", k, schema.Title)
			}
			return nil
		},
	}
}

func newTramitesListCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflow records of a kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := a.workflows(kind)
			if err != nil {
				return err
			}
			records, err := wf.List(cmd.Context())
			if err != nil {
				return err
			}
			if a.output == "yaml" {
				return printYAML(records)
			}
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{
					r.InstanceCode, r.ID, r.Status,
					fmt.Sprintf("%d%%", r.ProgressPercentage),
					fmt.Sprintf("%d docs", len(r.UploadedDocuments)),
				})
			}
			table([]string{"CODIGO", "ID", "ESTADO", "AVANCE", "DOCUMENTOS"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", workflows.KindAnteproyecto, "workflow kind")
	return cmd
}

func newTramitesShowCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one workflow record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := a.workflows(kind)
			if err != nil {
				return err
			}
			rec, err := wf.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printYAML(rec)
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", workflows.KindAnteproyecto, "workflow kind")
	return cmd
}

func newTramitesUploadCmd(a *app) *cobra.Command {
	var kind, key string
	cmd := &cobra.Command{
		Use:   "upload <id> <file>",
		Short: "Upload a document into a record's slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := a.workflows(kind)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			file := api.File{
				Name:        filepath.Base(args[1]),
				ContentType: http.DetectContentType(data),
				Data:        data,
			}
			rec, err := wf.UploadDocument(cmd.Context(), args[0], file, key)
			if err != nil {
				return err
			}
			if doc := rec.DocumentByKey(key); doc != nil {
				fmt.Printf("Documento %s en slot %s (%d bytes)\n", doc.Name, doc.Key, doc.Size)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", workflows.KindAnteproyecto, "workflow kind")
	cmd.Flags().StringVar(&key, "key", "", "destination document slot")
	cmd.MarkFlagRequired("key")
	return cmd
}
