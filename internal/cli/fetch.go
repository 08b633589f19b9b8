package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/rtad/internal/rtad"
	"github.com/rileyhilliard/rtad/internal/ui"
	"github.com/rileyhilliard/rtad/internal/util"
)

type fetchOptions struct {
	Table string
	URL   string
	// LastID is the cursor to fetch from; nil fetches the full set.
	LastID *int64
	JSON   bool
}

// fetchResult is the --json payload of rtad fetch.
type fetchResult struct {
	Table   string          `json:"table"`
	URL     string          `json:"url"`
	Cursor  *int64          `json:"cursor"`
	Sort    *rtad.SortState `json:"sort,omitempty"`
	Columns []string        `json:"columns"`
	Rows    []fetchRow      `json:"rows"`
}

type fetchRow struct {
	ID    int64    `json:"id"`
	Class string   `json:"class,omitempty"`
	Cells []string `json:"cells"`
}

// fetchCommand fetches one table once and prints it in the stored sort
// order.
func fetchCommand(ctx context.Context, out, errOut io.Writer, opts fetchOptions) error {
	if opts.JSON {
		machineMode = true
	}

	kind, err := rtad.ParseKind(opts.Table)
	if err != nil {
		return err
	}
	a, err := loadApp(&FeedFlags{URL: opts.URL})
	if err != nil {
		return err
	}
	client := a.newClient()
	feed := a.newFeeds([]rtad.TableKind{kind})[0]

	var cursor rtad.Cursor
	if opts.LastID != nil {
		cursor = rtad.CursorAt(*opts.LastID)
	}
	target := client.URL(kind, cursor)

	var spinner *ui.Spinner
	if !opts.JSON && isTerminal(errOut) {
		spinner = ui.NewSpinner(errOut, "Fetching "+kind.Path())
		spinner.Start()
	}

	entries, err := client.Fetch(ctx, kind, cursor)
	if err != nil {
		if spinner != nil {
			spinner.Fail()
		}
		return err
	}
	added := feed.Apply(entries)
	if err := feed.Resort(); err != nil {
		return err
	}
	if spinner != nil {
		spinner.Success(util.CountNoun(added, "row", "rows"))
	}

	result := buildFetchResult(feed, target)
	if opts.JSON {
		return WriteJSONSuccess(out, result)
	}

	fmt.Fprint(out, ui.RenderHeader(ui.HeaderInfo{
		Version: formatVersion(version),
		Title:   kind.Title(),
		Source:  target,
	}))
	if len(result.Rows) == 0 {
		fmt.Fprintln(out, ui.MutedStyle().Render("no rows"))
		return nil
	}

	cols := kind.Columns()
	columns := make([]ui.TableColumn, len(cols))
	for i, c := range cols {
		columns[i] = ui.TableColumn{Title: c.Title, Width: c.Width}
	}
	rows := make([][]string, len(result.Rows))
	for i, r := range result.Rows {
		cells := append([]string(nil), r.Cells...)
		cells[rtad.TimestampColumn] = rtad.FormatTimestamp(cells[rtad.TimestampColumn])
		rows[i] = cells
	}
	fmt.Fprintln(out, ui.RenderSimpleTable(columns, rows))
	fmt.Fprintln(out, ui.MutedStyle().Render(fetchSummary(kind, result)))
	return nil
}

func buildFetchResult(feed *rtad.Feed, target string) fetchResult {
	kind := feed.Kind()
	cols := kind.Columns()

	res := fetchResult{
		Table:   kind.String(),
		URL:     target,
		Columns: make([]string, len(cols)),
		Rows:    []fetchRow{},
	}
	for i, c := range cols {
		res.Columns[i] = c.Title
	}
	if c := feed.Cursor(); c.Valid() {
		v := c.Value()
		res.Cursor = &v
	}
	if st, ok := feed.SortState(); ok {
		res.Sort = &st
	}
	for _, r := range feed.Snapshot() {
		res.Rows = append(res.Rows, fetchRow{
			ID:    r.ID,
			Class: string(r.Class),
			Cells: r.Cells,
		})
	}
	return res
}

// fetchSummary renders "12 rows | cursor 42 | sorted by Code ▼".
func fetchSummary(kind rtad.TableKind, res fetchResult) string {
	parts := []string{util.CountNoun(len(res.Rows), "row", "rows")}
	if res.Cursor != nil {
		parts = append(parts, fmt.Sprintf("cursor %d", *res.Cursor))
	}
	if res.Sort != nil {
		parts = append(parts, "sorted by "+kind.Columns()[res.Sort.Column].Title+" "+res.Sort.Direction.Arrow())
	} else {
		parts = append(parts, "arrival order")
	}
	return strings.Join(parts, " | ")
}
