// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package perf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zintix-labs/scratchlab/errs"
)

func TestRunPProfModes(t *testing.T) {
	ProfileDir = t.TempDir()
	calls := 0
	exe := func() error { calls++; return nil }
	for _, mode := range []string{"", "cpu", "heap", "allocs"} {
		if err := RunPProf(exe, mode); err != nil {
			t.Fatalf("mode %q: %v", mode, err)
		}
	}
	if calls != 4 {
		t.Fatalf("exe must run once per mode, got %d", calls)
	}
	for _, name := range []string{"cpu.pprof", "heap.pprof", "allocs.pprof"} {
		if _, err := os.Stat(filepath.Join(ProfileDir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestRunPProfErrors(t *testing.T) {
	ProfileDir = t.TempDir()
	if err := RunPProf(func() error { return nil }, "trace"); !errs.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	want := errs.Configf("bad config")
	if err := RunPProf(func() error { return want }, "heap"); err != want {
		t.Fatalf("exe error must pass through, got %v", err)
	}
}
