// Package policy defines the injectable commit-content policy: allowed
// commit types, subject length limit and banned-phrase patterns.
package policy
