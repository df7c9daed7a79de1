// Package storetest provides a scripted store fake that records every
// executed backend call for assertions.
package storetest

import (
	"context"
	"sync"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

// Filter records one applied column filter.
type Filter struct {
	Column string
	Op     string
	Value  interface{}
}

// Order records one applied sort instruction.
type Order struct {
	Column    string
	Ascending bool
}

// Call records one executed backend request.
type Call struct {
	Table            string
	Op               string
	Columns          string
	Filters          []Filter
	Orders           []Order
	Limit            *int
	Payload          store.Record
	Returning        bool
	ConflictKey      string
	IgnoreDuplicates bool
}

// Fake implements store.Store with scripted responses. Responses are
// sticky: every executing call returns the configured rows or error
// until reconfigured. Per-table responses take precedence over the
// sticky default.
type Fake struct {
	mu        sync.Mutex
	rows      []store.Record
	err       error
	tableRows map[string][]store.Record
	tableErrs map[string]error
	calls     []Call

	// PingErr is returned by Ping.
	PingErr error
}

// NewFake creates an empty fake responding with no rows.
func NewFake() *Fake {
	return &Fake{}
}

// RespondWith sets the rows returned by executing calls and clears any
// configured error.
func (f *Fake) RespondWith(rows ...store.Record) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = rows
	f.err = nil
	return f
}

// FailWith sets the error returned by executing calls.
func (f *Fake) FailWith(err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	return f
}

// RespondTo sets the rows returned for calls against one table.
func (f *Fake) RespondTo(table string, rows ...store.Record) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tableRows == nil {
		f.tableRows = make(map[string][]store.Record)
	}
	f.tableRows[table] = rows
	return f
}

// FailTable sets the error returned for calls against one table.
func (f *Fake) FailTable(table string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tableErrs == nil {
		f.tableErrs = make(map[string]error)
	}
	f.tableErrs[table] = err
	return f
}

// Calls returns the executed calls in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// LastCall returns the most recent executed call.
func (f *Fake) LastCall() (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return Call{}, false
	}
	return f.calls[len(f.calls)-1], true
}

// Reset clears recorded calls and configured responses.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = nil
	f.err = nil
	f.tableRows = nil
	f.tableErrs = nil
	f.calls = nil
}

// From implements store.Store.
func (f *Fake) From(table string) store.Query {
	return &fakeQuery{fake: f, call: Call{Table: table, Columns: "*"}}
}

// Ping implements store.Store.
func (f *Fake) Ping(ctx context.Context) error {
	return f.PingErr
}

func (f *Fake) record(call Call) ([]store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if err, ok := f.tableErrs[call.Table]; ok {
		return nil, err
	}
	if rows, ok := f.tableRows[call.Table]; ok {
		return rows, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

// fakeQuery accumulates one call's description until an executing
// method hands it to the fake.
type fakeQuery struct {
	fake *Fake
	call Call
}

func (q *fakeQuery) Select(columns string) store.Query {
	q.call.Columns = columns
	return q
}

func (q *fakeQuery) Eq(column string, value interface{}) store.Query {
	q.call.Filters = append(q.call.Filters, Filter{Column: column, Op: "eq", Value: value})
	return q
}

func (q *fakeQuery) Ilike(column, pattern string) store.Query {
	q.call.Filters = append(q.call.Filters, Filter{Column: column, Op: "ilike", Value: pattern})
	return q
}

func (q *fakeQuery) Order(column string, ascending bool) store.Query {
	q.call.Orders = append(q.call.Orders, Order{Column: column, Ascending: ascending})
	return q
}

func (q *fakeQuery) Limit(n int) store.Query {
	q.call.Limit = &n
	return q
}

func (q *fakeQuery) Fetch(ctx context.Context) ([]store.Record, error) {
	q.call.Op = "fetch"
	return q.fake.record(q.call)
}

func (q *fakeQuery) Insert(ctx context.Context, payload store.Record, returning bool) ([]store.Record, error) {
	q.call.Op = "insert"
	q.call.Payload = payload
	q.call.Returning = returning
	return q.fake.record(q.call)
}

func (q *fakeQuery) Upsert(ctx context.Context, payload store.Record, conflictKey string, ignoreDuplicates bool) ([]store.Record, error) {
	q.call.Op = "upsert"
	q.call.Payload = payload
	q.call.ConflictKey = conflictKey
	q.call.IgnoreDuplicates = ignoreDuplicates
	return q.fake.record(q.call)
}

func (q *fakeQuery) Update(ctx context.Context, payload store.Record, returning bool) ([]store.Record, error) {
	q.call.Op = "update"
	q.call.Payload = payload
	q.call.Returning = returning
	return q.fake.record(q.call)
}

func (q *fakeQuery) Delete(ctx context.Context) error {
	q.call.Op = "delete"
	_, err := q.fake.record(q.call)
	return err
}

// Ensure Fake implements the store contract.
var _ store.Store = (*Fake)(nil)

// Ensure fakeQuery implements the query contract.
var _ store.Query = (*fakeQuery)(nil)
