// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withVars(t *testing.T, v, c, d string) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = v, c, d
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestApplyBuildInfo(t *testing.T) {
	tests := []struct {
		name       string
		vars       [3]string
		info       debug.BuildInfo
		wantV      string
		wantCommit string
		wantDate   string
	}{
		{
			name: "fills unset values",
			vars: [3]string{"dev", "none", "unknown"},
			info: debug.BuildInfo{
				Main: debug.Module{Version: "v1.2.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
				},
			},
			wantV:      "v1.2.0",
			wantCommit: "0123456",
			wantDate:   "2026-01-02T03:04:05Z",
		},
		{
			name: "keeps ldflags values",
			vars: [3]string{"1.0.0", "abcdef1", "2025-12-01"},
			info: debug.BuildInfo{
				Main:     debug.Module{Version: "v9.9.9"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffff"}},
			},
			wantV:      "1.0.0",
			wantCommit: "abcdef1",
			wantDate:   "2025-12-01",
		},
		{
			name:       "devel build stays dev",
			vars:       [3]string{"dev", "none", "unknown"},
			info:       debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantV:      "dev",
			wantCommit: "none",
			wantDate:   "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVars(t, tt.vars[0], tt.vars[1], tt.vars[2])
			applyBuildInfo(&tt.info)
			assert.Equal(t, tt.wantV, Version)
			assert.Equal(t, tt.wantCommit, Commit)
			assert.Equal(t, tt.wantDate, Date)
		})
	}
}

func TestInfo(t *testing.T) {
	withVars(t, "0.3.0", "abc1234", "2026-10-01")

	assert.Equal(t, "apisheet version 0.3.0 (commit: abc1234, built: 2026-10-01, go: "+runtime.Version()+")", Info())
	assert.Equal(t, "0.3.0", Short())
	assert.Equal(t, Build{Version: "0.3.0", Commit: "abc1234", Date: "2026-10-01", Go: runtime.Version()}, Current())
}
