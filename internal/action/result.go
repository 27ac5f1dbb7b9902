package action

// Result is the sealed outcome of attempting an action.
//
// The closed set of variants is UpdateResult, ExecuteResult, any
// QueryResult implementation, RewriteResult, and CompoundResult. The
// executor dispatches over these with an exhaustive type switch, so
// adding a terminal kind is a compile-time-visible decision.
//
// UpdateResult, ExecuteResult, and QueryResult are terminal.
// CompoundResult is a terminal aggregate whose entries may nest.
// RewriteResult is the one non-terminal kind: it directs the executor to
// execute replacement actions instead.
type Result interface {
	actionResult() // sealed
}

// UpdateResult is a terminal mutation outcome with an affected-row count.
type UpdateResult struct {
	NumberAffected int64
	Message        string
}

func (UpdateResult) actionResult() {}

// ExecuteResult is a terminal side-effecting outcome with no
// affected-row count.
type ExecuteResult struct {
	Message string
}

func (ExecuteResult) actionResult() {}

// QueryResult is the capability satisfied by terminal read outcomes.
// RowBasedQueryResult is the concrete variant this module ships; other
// packages provide their own shape by embedding it.
type QueryResult interface {
	Result
	QueryMessage() string
}

// RowBasedQueryResult is a QueryResult carrying rows as ordered objects.
type RowBasedQueryResult struct {
	Data    []Object
	Message string
}

func (RowBasedQueryResult) actionResult() {}

// QueryMessage implements QueryResult.
func (r RowBasedQueryResult) QueryMessage() string {
	return r.Message
}

// RewriteResult directs the executor to re-execute using the replacement
// actions instead of the one the handler was given. A handler returning
// zero replacements is an error, but that invariant is enforced by the
// executor, not here: the executor knows which handler to blame.
type RewriteResult struct {
	Replacements []Action
}

func (RewriteResult) actionResult() {}

// CompoundEntry pairs a replacement action with its own result.
// Source is the original replacement Action, not a copy.
type CompoundEntry struct {
	Source Action
	Result Result
}

// CompoundResult is a terminal aggregate: an ordered mapping from
// replacement action to the result of executing it. Entry order matches
// the replacement sequence that produced it, and entry results may
// themselves be CompoundResults, giving the tree shape of the rewrite.
type CompoundResult struct {
	entries []CompoundEntry
}

func (CompoundResult) actionResult() {}

// NewCompoundResult builds a CompoundResult from ordered entries.
// The slice is copied.
func NewCompoundResult(entries []CompoundEntry) CompoundResult {
	copied := make([]CompoundEntry, len(entries))
	copy(copied, entries)
	return CompoundResult{entries: copied}
}

// Len returns the number of entries.
func (r CompoundResult) Len() int {
	return len(r.entries)
}

// Entries returns the ordered entries. The slice is a copy; the Actions
// and Results it holds are the originals.
func (r CompoundResult) Entries() []CompoundEntry {
	out := make([]CompoundEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Get returns the result for the first entry whose source is structurally
// equal to the given action.
func (r CompoundResult) Get(a Action) (Result, bool) {
	for _, e := range r.entries {
		if e.Source.Equal(a) {
			return e.Result, true
		}
	}
	return nil, false
}
