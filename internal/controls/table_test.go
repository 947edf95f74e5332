package controls

import (
	"testing"

	"github.com/HerodesVe/fsr-go/internal/models"
)

func TestResolveActionsPerRowPredicates(t *testing.T) {
	actions := []Action{
		{ID: "edit", Label: "Editar"},
		{ID: "delete", Label: "Eliminar", Disabled: func(row any) bool {
			rec := row.(*models.WorkflowRecord)
			return rec.Status == "submitted"
		}},
	}

	draft := &models.WorkflowRecord{Status: "draft"}
	submitted := &models.WorkflowRecord{Status: "submitted"}

	got := ResolveActions(actions, draft)
	if got[0].Disabled || got[1].Disabled {
		t.Fatalf("draft row must have both actions enabled: %+v", got)
	}
	got = ResolveActions(actions, submitted)
	if got[0].Disabled {
		t.Fatal("edit has no predicate and must stay enabled")
	}
	if !got[1].Disabled {
		t.Fatal("delete must be disabled for submitted records")
	}
}
