// Package user contains the User aggregate root and its lifecycle rules.
// Soft deletion is modeled as the one-directional transition to the terminal
// Blocked operational state.
package user
