// Package autosave commits work-in-progress to git on a schedule.
//
// One run takes an exclusive flock, checks that enough time has passed
// since the previous run, and commits whatever `git status --porcelain`
// reports, optionally pushing afterwards. Every run finishes by
// atomically rewriting a small JSON state file, so external tooling can
// always read a consistent snapshot of the last outcome.
//
// Watch mode keeps a run loop alive: filesystem events (debounced) and
// a maximum-interval ticker both trigger runs, and the lock plus the
// interval gate keep concurrent or overeager triggers harmless.
package autosave
