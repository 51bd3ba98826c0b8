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
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/scratchlab/errs"
)

// ProfileDir pprof 檔案寫入路徑
var ProfileDir = "build/profiling"

// RunPProf 依 mode 決定是否包一層 profiling 執行 exe。
//
// mode: "" 不做 profiling；cpu / heap / allocs 分別寫出對應的 .pprof。exe 的錯誤原樣回傳。
func RunPProf(exe func() error, mode string) error {
	switch mode {
	case "":
		return exe()
	case "cpu":
		return PProfCPU(exe)
	case "heap":
		return PProfHeap(exe)
	case "allocs":
		return PProfAllocs(exe)
	default:
		return errs.InvalidArgf("unknown pprof mode %q (want cpu, heap or allocs)", mode)
	}
}

// PProfCPU 在 exe 執行期間做 CPU profiling
//
// 可以作性能分析，也可以拿來做構建時給pgo的優化blueprint
//
// Usage like:
//
//	go run ./cmd/run -p cpu
func PProfCPU(exe func() error) error {
	f, err := create("cpu.pprof")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.WrapIO(err, "failed to start pprof")
	}
	defer pprof.StopCPUProfile()

	return exe()
}

// PProfHeap 會在 exe() 執行完後，寫出一次 Heap Snapshot（in-use memory）。
// 寫出前先 runtime.GC()，讓快照貼近 live objects。
func PProfHeap(exe func() error) error {
	if err := exe(); err != nil {
		return err
	}
	runtime.GC()

	f, err := create("heap.pprof")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errs.WrapIO(err, "failed to write heap profile")
	}
	return nil
}

// PProfAllocs 會在 exe() 後寫出「累積配置」(allocs) Profile，
// 需要搭配 -alloc_space / -alloc_objects 指標查看。
func PProfAllocs(exe func() error) error {
	if err := exe(); err != nil {
		return err
	}
	f, err := create("allocs.pprof")
	if err != nil {
		return err
	}
	defer f.Close()
	if prof := pprof.Lookup("allocs"); prof != nil {
		if err := prof.WriteTo(f, 0); err != nil {
			return errs.WrapIO(err, "failed to write allocs profile")
		}
	}
	return nil
}

func create(name string) (*os.File, error) {
	if err := os.MkdirAll(ProfileDir, 0o755); err != nil {
		return nil, errs.WrapIO(err, "failed to create profiling dir")
	}
	f, err := os.Create(filepath.Join(ProfileDir, name))
	if err != nil {
		return nil, errs.WrapIO(err, "failed to create "+name)
	}
	return f, nil
}
