// Package transform holds the typed records for a correction result
// returned by the proofreading service, and the one-time passes that
// prepare a result for interactive use: tolerant decoding, metadata
// initialization, overlap grouping, and availability derivation.
//
// A Document moves through a fixed lifecycle: Decode produces the typed
// structure, InitMeta attaches stable indices and groups and replays
// any recovered decisions, and from then on only Status, IsAvailable,
// and a sentence's ActiveTokens change as the user acts.
package transform
