// Package pipeline provides a framework for executing report steps in sequence.
//
// The SLA report is produced by passing one State through an ordered list of
// steps: store filter, status filter, date filter, classification and
// aggregation. Each step is implemented as a Step that receives the current
// state and narrows or extends it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It provides consistent error handling and logging across steps
// 2. Each filter records its own trace in the report's FilterStats
// 3. Steps can be tested in isolation with a hand-built State
//
// A pipeline run is synchronous and owns its State; nothing is shared between
// runs, so separate runs may execute concurrently.
package pipeline
