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

// Package demo 提供內嵌示範設定（demo_configs）的便利入口，給 CLI 與測試使用。
package demo

import (
	"log/slog"

	"github.com/zintix-labs/scratchlab"
	"github.com/zintix-labs/scratchlab/catalog"
	"github.com/zintix-labs/scratchlab/demo/demo_configs"
	"github.com/zintix-labs/scratchlab/sdk/core"
	"github.com/zintix-labs/scratchlab/spec"
)

// Default 未指定時使用的示範設定名稱
const Default = "classic_3x3"

// New 以內嵌示範設定建立 catalog
func New() (*catalog.Catalog, error) {
	return catalog.New(demo_configs.FS)
}

// Names 回傳所有示範設定名稱（已排序）
func Names() []string {
	c, err := New()
	if err != nil {
		return nil
	}
	return c.Names()
}

// Setting 依名稱讀取示範設定；空字串使用 Default。
func Setting(name string) (*spec.GameSetting, error) {
	if name == "" {
		name = Default
	}
	c, err := New()
	if err != nil {
		return nil, err
	}
	return c.GameSetting(name)
}

// NewLab 以示範設定與預設 PCG64 工廠建立 Lab
func NewLab(name string, log *slog.Logger) (*scratchlab.Lab, error) {
	gs, err := Setting(name)
	if err != nil {
		return nil, err
	}
	return scratchlab.New(gs, core.Default(), log)
}
