// Package kernel contains shared value objects used across all aggregates:
// entity identifiers, actor roles, and the canonical
// {ApprovalState, OperationalState} lifecycle pair.
package kernel
