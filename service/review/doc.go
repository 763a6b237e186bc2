// Package review implements the human-in-the-loop review gate. A change set
// that passed verification is held here until an explicit approve or reject
// decision is recorded; the gate never advances on its own.
package review
