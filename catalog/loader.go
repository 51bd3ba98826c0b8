package catalog

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/scratchlab/errs"
	"github.com/zintix-labs/scratchlab/spec"
)

// maxConfigBytes 解壓後設定檔的大小上限
const maxConfigBytes = 64 << 20

type format uint8

const (
	formatSniff format = iota
	formatJSON
	formatYAML
)

type compression uint8

const (
	compressNone compression = iota
	compressZstd
	compressGzip
)

// ConfigName 由檔名取得設定名稱；不是 .json/.yaml/.yml（可再接 .zst/.gz）時 ok 為 false。
func ConfigName(file string) (name string, ok bool) {
	base, _, fm := splitExt(filepath.Base(file))
	if fm == formatSniff {
		return "", false
	}
	return strings.ToLower(base), true
}

// ReadFile 從檔案路徑讀取設定。副檔名決定格式與壓縮方式；無法辨識的副檔名依內容判斷 JSON / YAML。
func ReadFile(path string) (*spec.GameSetting, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapIO(err, "read config file failed")
	}
	return Decode(path, raw)
}

// ReadFS 從 fs.FS 讀取設定
func ReadFS(fsys fs.FS, name string) (*spec.GameSetting, error) {
	if fsys == nil {
		return nil, errs.WrapIO(errs.NewFatal("nil fs"), "read config failed")
	}
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errs.WrapIO(err, "read config file failed")
	}
	return Decode(name, raw)
}

// Decode 依檔名解壓並解析設定內容，GameSetting.Name 設為設定名稱。
func Decode(filename string, raw []byte) (*spec.GameSetting, error) {
	base, cp, fm := splitExt(filepath.Base(filename))
	data, err := decompress(cp, raw)
	if err != nil {
		return nil, errs.WrapWithExtra(err, "decompress config failed", filename)
	}
	if fm == formatSniff {
		fm = sniff(data)
	}

	var gs *spec.GameSetting
	switch fm {
	case formatJSON:
		gs, err = spec.GetGameSettingByJSON(data)
	default:
		gs, err = spec.GetGameSettingByYAML(data)
	}
	if err != nil {
		return nil, errs.WrapWithExtra(err, "parse game setting failed", filename)
	}
	gs.Name = strings.ToLower(base)
	return gs, nil
}

// ============================================================
// ** 以下內部方法 **
// ============================================================

func splitExt(file string) (string, compression, format) {
	lower := strings.ToLower(file)
	cp := compressNone
	switch {
	case strings.HasSuffix(lower, ".zst"):
		cp = compressZstd
	case strings.HasSuffix(lower, ".gz"):
		cp = compressGzip
	}
	if cp != compressNone {
		ext := filepath.Ext(file)
		file = file[:len(file)-len(ext)]
		lower = lower[:len(lower)-len(ext)]
	}
	ext := filepath.Ext(lower)
	switch ext {
	case ".json":
		return file[:len(file)-len(ext)], cp, formatJSON
	case ".yaml", ".yml":
		return file[:len(file)-len(ext)], cp, formatYAML
	default:
		return file, cp, formatSniff
	}
}

func decompress(cp compression, raw []byte) ([]byte, error) {
	var r io.Reader
	switch cp {
	case compressZstd:
		zr, zerr := zstd.NewReader(bytes.NewReader(raw))
		if zerr != nil {
			return nil, errs.WrapIO(zerr, "create zstd reader failed")
		}
		defer zr.Close()
		r = zr
	case compressGzip:
		gr, gerr := gzip.NewReader(bytes.NewReader(raw))
		if gerr != nil {
			return nil, errs.WrapIO(gerr, "create gzip reader failed")
		}
		defer gr.Close()
		r = gr
	default:
		return raw, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxConfigBytes+1))
	if err != nil {
		return nil, errs.WrapIO(err, "read decompressed data failed")
	}
	if len(data) > maxConfigBytes {
		return nil, errs.WrapIO(errs.Fatalf("decompressed config exceeds %d bytes", maxConfigBytes), "read decompressed data failed")
	}
	return data, nil
}

func sniff(data []byte) format {
	t := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(t) > 0 && t[0] == '{' {
		return formatJSON
	}
	return formatYAML
}
