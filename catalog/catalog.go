// Package catalog 索引一或多個 fs.FS 中的設定檔，並依名稱讀取成 *spec.GameSetting。
//
// 設定檔來源必須是扁平目錄（不含子目錄）；名稱為去掉副檔名與壓縮副檔名後的小寫檔名，
// 例如 "Classic_3x3.json.zst" 的名稱為 "classic_3x3"。
package catalog

import (
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/spec"
)

var (
	ErrDupName = errs.NewFatal("duplicate config name")
)

type Entry struct {
	Name       string
	ConfigName string
}

type Catalog struct {
	byName map[string]Entry
	names  []string // 用來穩定排序
	config *multiFS
}

// New 索引所有來源並登錄每一個可辨識的設定檔（只驗證檔名，不解析內容）。
func New(cfg ...fs.FS) (*Catalog, error) {
	multFS, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	c := &Catalog{
		byName: map[string]Entry{},
		names:  make([]string, 0, len(multFS.index)),
		config: multFS,
	}
	for file := range multFS.index {
		if err := c.register(file); err != nil {
			return nil, err
		}
	}
	slices.Sort(c.names)
	return c, nil
}

func (c *Catalog) register(file string) error {
	if err := validFileName(file); err != nil {
		return err
	}
	name, _ := ConfigName(file)
	if prev, ok := c.byName[name]; ok {
		return errs.WrapWithExtra(ErrDupName, name, fmt.Sprintf("%s and %s", prev.ConfigName, file))
	}
	e := Entry{Name: name, ConfigName: file}
	c.byName[name] = e
	c.names = append(c.names, name)
	return nil
}

func (c *Catalog) Get(name string) (Entry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	m, ok := c.byName[name]
	return m, ok
}

func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Catalog) All() []Entry {
	m := make([]Entry, 0, len(c.names))
	for _, n := range c.names {
		m = append(m, c.byName[n])
	}
	return m
}

// GameSetting 依名稱讀取設定檔、初始化各子設定並執行檢查後回傳
func (c *Catalog) GameSetting(name string) (*spec.GameSetting, error) {
	e, ok := c.Get(name)
	if !ok {
		return nil, errs.InvalidArgf("config %q does not exist in catalog (have %s)", name, strings.Join(c.names, ", "))
	}
	src, ok := c.config.GetFS(e.ConfigName)
	if !ok {
		return nil, errs.NewFatal("file name does not exist in catalog")
	}
	return ReadFS(src, e.ConfigName)
}

func validFileName(file string) error {
	if file == "" {
		return errs.Configf("empty config filename")
	}
	// 1) 不能包含路徑或類似字元
	if strings.ContainsAny(file, `/\:`) {
		return errs.Configf("invalid config filename: %q (must be a basename; no / \\\\ :) ", file)
	}
	// 2) 不能以 . 開頭
	if strings.HasPrefix(file, ".") {
		return errs.Configf("invalid config filename: %q (cannot start with '.')", file)
	}
	// 3) 必須以 .yaml/.yml/.json 結尾（可再接 .zst/.gz）
	if _, ok := ConfigName(file); !ok {
		return errs.Configf("invalid config filename: %q (must end with .yaml, .yml or .json, optionally followed by .zst or .gz)", file)
	}
	return nil
}

type multiFS struct {
	src   []fs.FS
	index map[string]int // name -> src index
}

func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	for i, s := range src {
		if s == nil {
			return nil, errs.NewFatal(fmt.Sprintf("fs[%d] is nil", i))
		}
	}

	m := &multiFS{
		src:   src,
		index: make(map[string]int, 16),
	}

	// eager validate: build index and detect duplicates
	for i := 0; i < len(src); i++ {
		err := fs.WalkDir(src[i], ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// 只允許根目錄
				if path == "." {
					return nil
				}
				return errs.Configf("config FS must be flat (no subdirectories): %q", path)
			}
			if strings.HasPrefix(path, ".") {
				return nil
			}
			// 只索引設定檔；其他檔案（例如 .go）直接忽略
			if _, ok := ConfigName(path); !ok {
				return nil
			}
			if prev, ok := m.index[path]; ok {
				return errs.Configf("duplicate config %q in fs[%d] and fs[%d]", path, prev, i)
			}
			m.index[path] = i
			return nil
		})
		if err != nil {
			return nil, errs.WrapIO(err, "walk config fs failed")
		}
	}
	return m, nil
}

func (m *multiFS) GetFS(name string) (fs.FS, bool) {
	if id, ok := m.index[name]; ok {
		return m.src[id], ok
	}
	return nil, false
}
