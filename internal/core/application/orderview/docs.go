// Package orderview tracks the locally cached state of orders between
// upstream reads. Each order gets one View holding the latest snapshot,
// the optimistic status overlay while an update is in flight, and a small
// phase machine (Idle, Confirming, Submitting) that makes status updates
// non-reentrant per order.
//
// The Registry indexes views by order ID so commands, queries and
// background jobs all observe the same per-order state.
//
// Views never talk to the network themselves. Command handlers drive the
// phase machine around their gateway calls:
//
//	prior, _ := view.BeginSubmit()        // optimistic apply
//	err := gateway.UpdateStatus(ctx, ...) // upstream call, no lock held
//	if err != nil {
//	    view.FailSubmit(message)          // rollback to prior
//	} else {
//	    view.CompleteSubmit()             // keep the new status
//	}
package orderview
