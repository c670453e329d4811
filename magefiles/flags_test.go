package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTargetArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantMage []string
		wantRest []string
	}{
		{"target only", []string{"mage", "build"}, []string{"mage", "build"}, []string{}},
		{"mage flags kept", []string{"mage", "-v", "test:unit", "-run", "X"}, []string{"mage", "-v", "test:unit"}, []string{"-run", "X"}},
		{"no target", []string{"mage", "-l"}, []string{"mage", "-l"}, nil},
		{"double dash stops", []string{"mage", "--", "run"}, []string{"mage", "--", "run"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mage, rest := splitTargetArgs(tt.args)
			assert.Equal(t, tt.wantMage, mage)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestParseUnitFlags(t *testing.T) {
	f, err := parseUnitFlags([]string{"-run", "TestGallery", "-count", "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-run", "TestGallery", "-count=2"}, f.goTestArgs())

	f, err = parseUnitFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, f.goTestArgs())

	_, err = parseUnitFlags([]string{"-bogus"})
	require.Error(t, err)
}
