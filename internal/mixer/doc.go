// Package mixer orchestrates the full mix pipeline: it fans out asset fetches,
// segments the narration, builds the ducking envelope, compiles the filter
// graph, renders once, and publishes the result.
//
// Failure handling is deliberately uneven. The voice asset is load-bearing and
// any failure there aborts the run; music and individual sound effects degrade
// the mix instead of failing it. The per-run workspace is removed on every
// exit path, and every outcome lands in history and notifications.
package mixer
