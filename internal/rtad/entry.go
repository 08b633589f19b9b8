package rtad

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rileyhilliard/rtad/internal/errors"
)

// TableKind identifies one of the RTAD tables served by the backend.
type TableKind string

const (
	KindLastb TableKind = "lastb"
	KindProxy TableKind = "proxy"
)

// Kinds lists every table kind in display order.
var Kinds = []TableKind{KindLastb, KindProxy}

// TimestampColumn is the index of the timestamp column in every table.
const TimestampColumn = 0

// Column describes one table column.
type Column struct {
	Title string
	Width int
}

var lastbColumns = []Column{
	{Title: "Time", Width: 20},
	{Title: "IP", Width: 16},
	{Title: "Country", Width: 8},
	{Title: "City", Width: 14},
	{Title: "User", Width: 12},
	{Title: "Reason", Width: 22},
}

var proxyColumns = []Column{
	{Title: "Time", Width: 20},
	{Title: "Domain", Width: 20},
	{Title: "IP", Width: 16},
	{Title: "Country", Width: 8},
	{Title: "City", Width: 14},
	{Title: "Proxy", Width: 7},
	{Title: "Code", Width: 5},
	{Title: "URL", Width: 30},
}

// ParseKind converts a table name ("lastb", "proxy") into a TableKind.
func ParseKind(name string) (TableKind, error) {
	switch TableKind(strings.ToLower(strings.TrimSpace(name))) {
	case KindLastb:
		return KindLastb, nil
	case KindProxy:
		return KindProxy, nil
	}
	return "", errors.New(errors.ErrInput,
		fmt.Sprintf("Unknown table %q", name),
		"Known tables: lastb, proxy")
}

// String returns the table name.
func (k TableKind) String() string { return string(k) }

// Path is the backend endpoint serving this table.
func (k TableKind) Path() string { return "/rtad_" + string(k) }

// TableID is the identifier the dashboard uses for this table.
func (k TableKind) TableID() string { return string(k) + "Table" }

// StateKey is the durable storage key holding this table's sort state.
func (k TableKind) StateKey() string { return k.TableID() + "SortState" }

// Title is a human-readable table name.
func (k TableKind) Title() string {
	switch k {
	case KindLastb:
		return "Failed logins"
	case KindProxy:
		return "Proxy errors"
	}
	return string(k)
}

// Columns returns the column layout for this table.
func (k TableKind) Columns() []Column {
	switch k {
	case KindLastb:
		return lastbColumns
	case KindProxy:
		return proxyColumns
	}
	return nil
}

// ColumnIndex resolves a column by 0-based index or case-insensitive title.
func (k TableKind) ColumnIndex(ref string) (int, error) {
	cols := k.Columns()
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 0 && n < len(cols) {
			return n, nil
		}
	} else {
		for i, c := range cols {
			if strings.EqualFold(c.Title, ref) {
				return i, nil
			}
		}
	}
	return 0, errors.New(errors.ErrInput,
		fmt.Sprintf("Table %s has no column %q", k, ref),
		fmt.Sprintf("Use an index 0-%d or one of: %s", len(cols)-1, columnTitles(cols)))
}

func columnTitles(cols []Column) string {
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	return strings.Join(titles, ", ")
}

// Decode reads a JSON array of this table's rows.
func (k TableKind) Decode(r io.Reader) ([]Entry, error) {
	switch k {
	case KindLastb:
		var rows []LastbEntry
		if err := json.NewDecoder(r).Decode(&rows); err != nil {
			return nil, err
		}
		out := make([]Entry, len(rows))
		for i := range rows {
			out[i] = rows[i]
		}
		return out, nil
	case KindProxy:
		var rows []ProxyEntry
		if err := json.NewDecoder(r).Decode(&rows); err != nil {
			return nil, err
		}
		out := make([]Entry, len(rows))
		for i := range rows {
			out[i] = rows[i]
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown table kind %q", k)
}

// Entry is one row as served by the backend. Entries are immutable once
// rendered; a row is only ever replaced, never edited.
type Entry interface {
	EntryID() int64
	RawTimestamp() string
	SourceIP() string
	// Cells appends the display cells, in column order, to dst.
	Cells(dst []string) []string
	Status() StatusClass
}

// LastbEntry is a failed login attempt read from btmp.
type LastbEntry struct {
	ID            int64  `json:"id"`
	IPAddress     string `json:"ip_address"`
	Country       string `json:"country,omitempty"`
	City          string `json:"city,omitempty"`
	Timestamp     string `json:"timestamp"`
	User          string `json:"user"`
	FailureReason string `json:"failure_reason"`
}

func (e LastbEntry) EntryID() int64       { return e.ID }
func (e LastbEntry) RawTimestamp() string { return e.Timestamp }
func (e LastbEntry) SourceIP() string     { return e.IPAddress }
func (e LastbEntry) Status() StatusClass  { return StatusNone }

func (e LastbEntry) Cells(dst []string) []string {
	return append(dst,
		e.Timestamp,
		e.IPAddress,
		e.Country,
		e.City,
		e.User,
		e.FailureReason,
	)
}

// ProxyEntry is an HTTP error line parsed from a reverse-proxy log.
type ProxyEntry struct {
	ID        int64  `json:"id"`
	Domain    string `json:"domain"`
	IPAddress string `json:"ip_address"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	Timestamp string `json:"timestamp"`
	ProxyType string `json:"proxy_type"`
	ErrorCode int    `json:"error_code"`
	URL       string `json:"url"`
}

func (e ProxyEntry) EntryID() int64       { return e.ID }
func (e ProxyEntry) RawTimestamp() string { return e.Timestamp }
func (e ProxyEntry) SourceIP() string     { return e.IPAddress }
func (e ProxyEntry) Status() StatusClass  { return StatusClassFor(e.ErrorCode) }

func (e ProxyEntry) Cells(dst []string) []string {
	return append(dst,
		e.Timestamp,
		e.Domain,
		e.IPAddress,
		e.Country,
		e.City,
		e.ProxyType,
		strconv.Itoa(e.ErrorCode),
		e.URL,
	)
}
