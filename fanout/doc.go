// Package fanout runs an ordered batch of tasks concurrently under a fixed
// concurrency ceiling.
//
// Run executes every task and blocks until all of them finished. Gather does
// the same and returns one Outcome per task, in submission order, whatever
// order the tasks completed in. A task's failure (returned error or panic)
// never affects its siblings: Gather turns it into a Failure outcome, Run
// either discards it or hands it to a fault handler.
//
// Launch and Detach start a single task on its own goroutine and return
// immediately.
//
// Tasks receive the caller's context for its values only. The dispatcher never
// cancels a task and never stops early; there are no deadlines.
package fanout
