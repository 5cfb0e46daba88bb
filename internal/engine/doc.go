// Package engine implements the correction-state engine for results
// returned by the proofreading service.
//
// The engine tracks, for every proposed correction, whether it can
// currently be applied given the decisions already made, applies and
// reverses token-level edits against each sentence's live token
// stream, and computes character offsets into the evolving text.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - token: immutable token records, contiguous-run presence tests,
//     run splicing, and rendered-offset helpers
//   - transform: typed correction records, tolerant result decoding,
//     metadata initialization, overlap grouping, and availability
//   - history: the linear stack of accept/reject decisions
//
// Package engine itself provides the low-level applier (Apply, Reject,
// Undo) and the Session facade that coordinates a whole document.
//
// # Basic Usage
//
//	doc, err := transform.Decode(payload)
//	if err != nil {
//		return err
//	}
//	sess, err := engine.NewSession(doc)
//	if err != nil {
//		return err
//	}
//
//	for _, t := range sess.Available() {
//		sess.Accept(t)
//	}
//	corrected := sess.Text()
//
// # Ownership
//
// A Session is single-owner and performs no internal locking; callers
// sharing one across goroutines must serialize access themselves.
package engine
