package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcilePages(t *testing.T) {
	cases := []struct {
		name  string
		texts []string
		count int
		want  []string
	}{
		{"counts agree", []string{"a", "b"}, 2, []string{"a", "b"}},
		{"reader undercounts", []string{"a"}, 3, []string{"a", "", ""}},
		{"reader overcounts", []string{"a", "b", "c"}, 2, []string{"a", "b"}},
		{"count unavailable", []string{"a", "b"}, 0, []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reconcilePages(tc.texts, tc.count))
		})
	}
}
