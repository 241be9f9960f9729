package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiledash/internal/domain/layout"
)

func TestFindDashboard(t *testing.T) {
	list := layout.NewDashboardList()
	home, err := list.NewDashboard("Home")
	require.NoError(t, err)
	ops, err := list.NewDashboard("Ops")
	require.NoError(t, err)

	tests := []struct {
		name    string
		ref     string
		want    *layout.Dashboard
		wantErr string
	}{
		{name: "position", ref: "1", want: home},
		{name: "last position", ref: "2", want: ops},
		{name: "title ignores case", ref: "ops", want: ops},
		{name: "position out of range", ref: "3", wantErr: "out of range"},
		{name: "zero", ref: "0", wantErr: "out of range"},
		{name: "unknown title", ref: "Media", wantErr: `no dashboard titled "Media"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findDashboard(list, tt.ref)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}
