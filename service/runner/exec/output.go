package exec

import "github.com/viant/changegate/model/verification"

// Command represents the result of executing a single command
type Command struct {
	Input  string `json:"input,omitempty"`  // The command that was executed
	Output string `json:"output,omitempty"` // Standard output from the command
	Stderr string `json:"stderr,omitempty"` // Standard error from the command
	Status int    `json:"status,omitempty"` // Exit code of the command
}

// Output represents the outcome of a verification attempt.
type Output struct {
	Commands []*Command           `json:"commands,omitempty"` // Results of individual commands
	Result   *verification.Result `json:"result,omitempty"`   // Aggregated verification result
}
