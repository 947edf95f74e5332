package controls

// Action is a per-row table action with an independent disabled predicate
// evaluated against the row record. A nil predicate means always enabled.
type Action struct {
	ID       string
	Label    string
	Disabled func(row any) bool
}

// RowAction is an action resolved for one concrete row.
type RowAction struct {
	ID       string
	Label    string
	Disabled bool
}

// ResolveActions evaluates every action's predicate against the row.
func ResolveActions(actions []Action, row any) []RowAction {
	out := make([]RowAction, 0, len(actions))
	for _, a := range actions {
		disabled := false
		if a.Disabled != nil {
			disabled = a.Disabled(row)
		}
		out = append(out, RowAction{ID: a.ID, Label: a.Label, Disabled: disabled})
	}
	return out
}
