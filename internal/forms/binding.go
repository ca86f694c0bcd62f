package forms

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
)

// Row edit actions posted by the "add row" and "remove row" buttons
const (
	ActionField     = "_action"
	ActionSubmit    = ""
	ActionAddRow    = "add-row"
	ActionRemoveRow = "remove-row"
)

// Action is the button that posted the form
type Action struct {
	Kind  string
	Index int
}

// ParseAction reads the posted action. "remove-row:2" removes the third row.
func ParseAction(values url.Values) Action {
	raw := strings.TrimSpace(values.Get(ActionField))
	kind, idx, found := strings.Cut(raw, ":")
	if !found {
		return Action{Kind: kind, Index: -1}
	}
	i, err := strconv.Atoi(idx)
	if err != nil {
		return Action{Kind: kind, Index: -1}
	}
	return Action{Kind: kind, Index: i}
}

// IsRowEdit reports whether the post only edits rows and must not reach
// the backend
func (a Action) IsRowEdit() bool {
	return a.Kind == ActionAddRow || a.Kind == ActionRemoveRow
}

// bindFlat maps the top-level fields of values onto ptr using form tags
func bindFlat(values url.Values, ptr interface{}) error {
	if err := binding.MapFormWithTag(ptr, values, "form"); err != nil {
		return fmt.Errorf("failed to bind form: %w", err)
	}
	return nil
}

// bindRows maps indexed fields such as "items.0.quantity" onto a slice of
// rows ordered by index. Gaps left by removed rows are closed.
func bindRows[R any](values url.Values, prefix string) ([]R, error) {
	grouped := map[int]map[string][]string{}
	for key, vals := range values {
		rest, ok := strings.CutPrefix(key, prefix+".")
		if !ok {
			continue
		}
		idx, field, ok := strings.Cut(rest, ".")
		if !ok {
			continue
		}
		i, err := strconv.Atoi(idx)
		if err != nil || i < 0 {
			continue
		}
		if grouped[i] == nil {
			grouped[i] = map[string][]string{}
		}
		grouped[i][field] = vals
	}

	indexes := make([]int, 0, len(grouped))
	for i := range grouped {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	rows := make([]R, 0, len(indexes))
	for _, i := range indexes {
		var row R
		if err := binding.MapFormWithTag(&row, grouped[i], "form"); err != nil {
			return nil, fmt.Errorf("failed to bind %s row %d: %w", prefix, i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RowField names an indexed field of a repeated row, for inputs and inline
// error placement
func RowField(prefix string, i int, field string) string {
	return prefix + "." + strconv.Itoa(i) + "." + field
}

func removeAt[R any](rows []R, i int) []R {
	if i < 0 || i >= len(rows) {
		return rows
	}
	return append(rows[:i:i], rows[i+1:]...)
}
