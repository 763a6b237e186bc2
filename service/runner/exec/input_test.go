package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_Init(t *testing.T) {
	input := &Input{Commands: []string{"go test ./..."}}
	input.Init()
	assert.NotNil(t, input.Host)
	assert.Equal(t, "bash://localhost/", input.Host.URL)

	input = &Input{Host: &Host{URL: "ssh://build-01"}, Commands: []string{"make check"}}
	input.Init()
	assert.Equal(t, "ssh://build-01", input.Host.URL)
}

func TestInput_Validate(t *testing.T) {
	input := &Input{}
	input.Init()
	assert.NotNil(t, input.Validate())

	input.Commands = []string{"go vet ./..."}
	assert.Nil(t, input.Validate())
}
