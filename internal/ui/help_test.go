package ui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpContentListsBindings(t *testing.T) {
	m := &Model{styles: NewStyles()}
	content := m.helpContent()

	for _, want := range []string{
		"Search down", "Search up", "Replace all", "Split chapter",
		"Toggle wraparound", "Suggestions for word under cursor", "Undo", "Quit",
	} {
		require.Contains(t, content, want)
	}
}

func TestShowInPagerRequiresProgram(t *testing.T) {
	m := &Model{styles: NewStyles()}
	require.Error(t, m.showInPager("content"))
}
