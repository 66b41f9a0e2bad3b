// Package planner holds the trip-planning state machine: catalog search,
// the ordered selection, budget estimation, and composition of the page
// view. Every function here is pure; callers own the state and decide when
// to swap in the value a transition returns.
package planner
