package cli

import (
	"fmt"
	"strings"

	"github.com/chisel-db/chisel/internal/action"
)

// RenderResult renders a terminal result tree as indented text.
// Output is deterministic: compound entries in execution order, query
// row keys in canonical order.
func RenderResult(r action.Result) string {
	var b strings.Builder
	renderResult(&b, r, 0)
	return b.String()
}

func renderResult(b *strings.Builder, r action.Result, indent int) {
	prefix := strings.Repeat("  ", indent)

	switch res := r.(type) {
	case action.ExecuteResult:
		fmt.Fprintf(b, "%s%s\n", prefix, res.Message)
	case action.UpdateResult:
		fmt.Fprintf(b, "%s%s (%d row(s) affected)\n", prefix, res.Message, res.NumberAffected)
	case action.RowBasedQueryResult:
		fmt.Fprintf(b, "%s%s (%d row(s))\n", prefix, res.Message, len(res.Data))
		for _, row := range res.Data {
			fmt.Fprintf(b, "%s  - ", prefix)
			parts := make([]string, 0, len(row))
			for _, k := range row.SortedKeys() {
				parts = append(parts, fmt.Sprintf("%s=%s", k, action.FormatValue(row[k])))
			}
			fmt.Fprintf(b, "%s\n", strings.Join(parts, ", "))
		}
	case action.CompoundResult:
		fmt.Fprintf(b, "%scompound (%d results)\n", prefix, res.Len())
		for _, entry := range res.Entries() {
			fmt.Fprintf(b, "%s  %s:\n", prefix, entry.Source.Describe())
			renderResult(b, entry.Result, indent+2)
		}
	default:
		fmt.Fprintf(b, "%s%v\n", prefix, r)
	}
}

// resultJSON converts a terminal result into a JSON-friendly value for
// the structured output format.
func resultJSON(r action.Result) any {
	switch res := r.(type) {
	case action.ExecuteResult:
		return map[string]any{
			"kind":    "execute",
			"message": res.Message,
		}
	case action.UpdateResult:
		return map[string]any{
			"kind":            "update",
			"message":         res.Message,
			"number_affected": res.NumberAffected,
		}
	case action.RowBasedQueryResult:
		rows := make([]map[string]any, len(res.Data))
		for i, row := range res.Data {
			m := make(map[string]any, len(row))
			for _, k := range row.SortedKeys() {
				m[k] = valueJSON(row[k])
			}
			rows[i] = m
		}
		return map[string]any{
			"kind":    "query",
			"message": res.Message,
			"rows":    rows,
		}
	case action.CompoundResult:
		entries := make([]map[string]any, 0, res.Len())
		for _, entry := range res.Entries() {
			entries = append(entries, map[string]any{
				"action": entry.Source.Describe(),
				"result": resultJSON(entry.Result),
			})
		}
		return map[string]any{
			"kind":    "compound",
			"results": entries,
		}
	default:
		return map[string]any{
			"kind":  "unknown",
			"value": fmt.Sprintf("%v", r),
		}
	}
}

// valueJSON converts an attribute value into a JSON-friendly value.
func valueJSON(v action.Value) any {
	switch val := v.(type) {
	case action.String:
		return string(val)
	case action.Int:
		return int64(val)
	case action.Bool:
		return bool(val)
	case action.Array:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = valueJSON(elem)
		}
		return out
	case action.Object:
		out := make(map[string]any, len(val))
		for _, k := range val.SortedKeys() {
			out[k] = valueJSON(val[k])
		}
		return out
	default:
		return fmt.Sprintf("%v", v)
	}
}
