package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/rileyhilliard/rtad/internal/rtad"
	"github.com/rileyhilliard/rtad/internal/ui"
)

// stateReport is the --json payload of rtad state show.
type stateReport struct {
	Path   string                     `json:"path"`
	Tables []tableState               `json:"tables"`
	Other  map[string]json.RawMessage `json:"other,omitempty"`
}

type tableState struct {
	Table string          `json:"table"`
	Key   string          `json:"key"`
	Sort  *rtad.SortState `json:"sort,omitempty"`
	Error string          `json:"error,omitempty"`
}

// stateShowCommand prints the stored sort state of every table, flagging
// entries a feed would ignore.
func stateShowCommand(out io.Writer, asJSON bool) error {
	if asJSON {
		machineMode = true
	}

	a, err := loadApp(nil)
	if err != nil {
		return err
	}
	report, err := buildStateReport(a.store)
	if err != nil {
		return err
	}

	if asJSON {
		return WriteJSONSuccess(out, report)
	}

	fmt.Fprintln(out, ui.MutedStyle().Render("state file: "+report.Path))
	pairs := make([]ui.KeyValue, 0, len(report.Tables)+len(report.Other))
	for _, t := range report.Tables {
		kind, _ := rtad.ParseKind(t.Table)
		switch {
		case t.Error != "":
			pairs = append(pairs, ui.KeyValue{Key: t.Table, Value: ui.WarningStyle().Render("ignored: " + t.Error)})
		case t.Sort == nil:
			pairs = append(pairs, ui.KeyValue{Key: t.Table, Value: "arrival order", Muted: true})
		default:
			pairs = append(pairs, ui.KeyValue{
				Key:   t.Table,
				Value: fmt.Sprintf("sorted by %s %s", kind.Columns()[t.Sort.Column].Title, t.Sort.Direction.Arrow()),
			})
		}
	}
	keys := make([]string, 0, len(report.Other))
	for k := range report.Other {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, ui.KeyValue{Key: k, Value: string(report.Other[k]), Muted: true})
	}
	fmt.Fprint(out, ui.RenderKeyValues(pairs))
	return nil
}

func buildStateReport(store *rtad.StateStore) (stateReport, error) {
	raw, err := store.All()
	if err != nil {
		return stateReport{}, err
	}

	report := stateReport{Path: store.Path()}
	for _, kind := range rtad.Kinds {
		key := kind.StateKey()
		delete(raw, key)

		ts := tableState{Table: kind.String(), Key: key}
		st, err := store.Load(key)
		switch {
		case err != nil:
			ts.Error = errors.Summary(err)
		case st != nil && st.Column >= len(kind.Columns()):
			ts.Error = fmt.Sprintf("no column %d", st.Column)
		default:
			ts.Sort = st
		}
		report.Tables = append(report.Tables, ts)
	}
	if len(raw) > 0 {
		report.Other = raw
	}
	return report, nil
}

// stateResetCommand deletes the state file after confirmation.
func stateResetCommand(out io.Writer, yes bool) error {
	a, err := loadApp(nil)
	if err != nil {
		return err
	}

	if !yes {
		if !stdinIsTerminal() {
			return errors.New(errors.ErrInput,
				"Refusing to reset state without confirmation",
				"Pass --yes to reset non-interactively")
		}

		var confirm bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Forget the sort state in %s?", a.store.Path())).
					Value(&confirm),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrInput,
				"Failed to get user input",
				"Pass --yes to skip the prompt")
		}
		if !confirm {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s Sort state reset (%s)\n", ui.SuccessStyle().Render(ui.SymbolSuccess), a.store.Path())
	return nil
}
