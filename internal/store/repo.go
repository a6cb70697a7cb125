package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only; empty matches all
}

// AttemptData is one scored quiz submission. Questions and Answers are
// JSON snapshots owned by the quiz package.
type AttemptData struct {
	ID             string
	UserID         string
	Topic          string
	Difficulty     string
	Score          int
	TotalQuestions int
	Questions      []byte
	Answers        []byte
	CreatedAt      time.Time
}

// AttemptRecord is a stored attempt as read back for history views.
type AttemptRecord struct {
	AttemptData
	Sequence int64

	// EmailSent reflects the latest notification event for the attempt.
	EmailSent bool
}

// AttemptRepo persists quiz attempts. Attempts are immutable: there is no
// update or delete.
type AttemptRepo interface {
	InsertAttempt(ctx context.Context, data AttemptData) error
	ListAttempts(ctx context.Context, userID string, opts QueryOpts) ([]AttemptRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token counts for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// NotificationEventData records the outcome of the analysis/email step for
// a stored attempt.
type NotificationEventData struct {
	AttemptID    string
	UserID       string
	Email        string
	EmailSent    bool
	Analysis     string
	ErrorMessage string
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendNotification records that analysis/email ran for an attempt.
	AppendNotification(ctx context.Context, data NotificationEventData) error
}

// filter accumulates WHERE clauses with numbered placeholders, which both
// SQLite and Postgres accept.
type filter struct {
	clauses []string
	args    []any
}

// add appends a clause; expr must contain one %d for the placeholder index.
func (f *filter) add(expr string, arg any) {
	f.args = append(f.args, arg)
	f.clauses = append(f.clauses, fmt.Sprintf(expr, len(f.args)))
}

// applyOpts adds the sequence and time bounds of opts. col prefixes the
// column names, e.g. "a." for an aliased table.
func (f *filter) applyOpts(opts QueryOpts, col, tsCol string) {
	if opts.After > 0 {
		f.add(col+"sequence > $%d", opts.After)
	}
	if opts.Before > 0 {
		f.add(col+"sequence < $%d", opts.Before)
	}
	if !opts.From.IsZero() {
		f.add(col+tsCol+" >= $%d", opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		f.add(col+tsCol+" <= $%d", opts.To.UnixMilli())
	}
}

func (f *filter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// limit renders a LIMIT clause as a bound parameter.
func (f *filter) limit(n int) string {
	if n <= 0 {
		return ""
	}
	f.args = append(f.args, n)
	return fmt.Sprintf(" LIMIT $%d", len(f.args))
}
