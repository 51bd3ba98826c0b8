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

package scratchlab

import (
	"io/fs"

	"github.com/zintix-labs/scratchlab/catalog"
	"github.com/zintix-labs/scratchlab/spec"
)

// LoadFile 從路徑讀取並驗證設定（.json / .yaml / .yml，可再接 .zst / .gz）。
//
// 讀取或格式錯誤為 IO 類錯誤；內容不合法為 Config 類錯誤。
func LoadFile(path string) (*spec.GameSetting, error) {
	return catalog.ReadFile(path)
}

// LoadFS 從 fs.FS 讀取並驗證設定
func LoadFS(fsys fs.FS, name string) (*spec.GameSetting, error) {
	return catalog.ReadFS(fsys, name)
}
