package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/screening/internal/cmd"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotNil(t, cmd.NewRootCommand())
}
