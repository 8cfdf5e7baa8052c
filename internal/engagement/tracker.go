package engagement

import (
	"context"
	"fmt"
)

// Tracker coordinates the local ledger with the server-side increment. Per
// (client, resource, counter) the state machine is NotCounted -> Counted,
// one-way, no reset: the first action triggers exactly one increment, later
// actions still perform their primary effect but issue no call.
//
// The ledger check and the increment are not atomic; two near-simultaneous
// actions on the same client can slip through and double-count. Accepted for
// approximate metrics.
type Tracker struct {
	ledger Ledger
	inc    Incrementer
}

// NewTracker constructs a Tracker.
func NewTracker(l Ledger, inc Incrementer) *Tracker {
	return &Tracker{ledger: l, inc: inc}
}

// Track counts the action if this client has not counted it yet. It returns
// true when an increment was actually issued.
func (t *Tracker) Track(ctx context.Context, resourceID string, c Counter) (bool, error) {
	done, err := t.ledger.Counted(ctx, resourceID, c)
	if err != nil {
		return false, fmt.Errorf("ledger check: %w", err)
	}
	if done {
		return false, nil
	}
	if err := t.inc.Increment(ctx, resourceID, c); err != nil {
		// Not marked: the next action retries the increment.
		return false, err
	}
	if err := t.ledger.MarkCounted(ctx, resourceID, c); err != nil {
		// The increment landed; a mark failure can at worst recount later.
		return true, fmt.Errorf("ledger mark: %w", err)
	}
	return true, nil
}

// TrackRead counts an "open preview" action.
func (t *Tracker) TrackRead(ctx context.Context, resourceID string) (bool, error) {
	return t.Track(ctx, resourceID, Read)
}

// TrackDownload counts an "open file link" action.
func (t *Tracker) TrackDownload(ctx context.Context, resourceID string) (bool, error) {
	return t.Track(ctx, resourceID, Download)
}
