package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecision_State(t *testing.T) {
	var useCases = []struct {
		description string
		decision    *Decision
		expect      State
	}{
		{
			description: "nil decision is pending",
			decision:    nil,
			expect:      StatePending,
		},
		{
			description: "zero-value decision carries no verdict",
			decision:    &Decision{ID: "r1"},
			expect:      StatePending,
		},
		{
			description: "recorded approval",
			decision:    &Decision{ID: "r1", Approved: true, DecidedAt: time.Now()},
			expect:      StateApproved,
		},
		{
			description: "recorded rejection",
			decision:    &Decision{ID: "r1", DecidedAt: time.Now()},
			expect:      StateRejected,
		},
	}
	for _, useCase := range useCases {
		assert.Equal(t, useCase.expect, useCase.decision.State(), useCase.description)
	}
}
