package cli

import (
	"fmt"
	"io"

	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/rileyhilliard/rtad/internal/rtad"
	"github.com/rileyhilliard/rtad/internal/ui"
)

// sortCommand shows, sets, toggles or clears the stored sort of one table.
// args is <table> [column [direction]].
func sortCommand(out io.Writer, args []string, clearSort bool) error {
	kind, err := rtad.ParseKind(args[0])
	if err != nil {
		return err
	}
	if clearSort && len(args) > 1 {
		return errors.New(errors.ErrInput,
			"--clear takes no column",
			"Use 'rtad sort "+kind.String()+" --clear'")
	}

	a, err := loadApp(nil)
	if err != nil {
		return err
	}
	feed := a.newFeeds([]rtad.TableKind{kind})[0]

	switch {
	case clearSort:
		if err := feed.ClearSort(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s: arrival order\n", ui.SuccessStyle().Render(ui.SymbolSuccess), kind)
		return nil

	case len(args) == 1:
		fmt.Fprintf(out, "%s: %s\n", kind, describeSort(kind, feed))
		return nil
	}

	col, err := kind.ColumnIndex(args[1])
	if err != nil {
		return err
	}

	if len(args) == 3 {
		dir, err := rtad.ParseDirection(args[2])
		if err != nil {
			return err
		}
		if err := feed.SetSort(rtad.SortState{Column: col, Direction: dir}); err != nil {
			return err
		}
	} else if _, err := feed.ClickColumn(col); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s: %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), kind, describeSort(kind, feed))
	return nil
}

// describeSort renders "sorted by Code ▼" or "arrival order".
func describeSort(kind rtad.TableKind, feed *rtad.Feed) string {
	st, ok := feed.SortState()
	if !ok {
		return "arrival order"
	}
	return fmt.Sprintf("sorted by %s %s", kind.Columns()[st.Column].Title, st.Direction.Arrow())
}
