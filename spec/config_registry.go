package spec

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/zintix-labs/scratchlab/errs"
	"gopkg.in/yaml.v3"
)

// GetGameSettingByYAML
// 會以嚴格模式讀取 YAML 設定、初始化各子設定並執行檢查後回傳。
func GetGameSettingByYAML(data []byte) (*GameSetting, error) {
	gs := &GameSetting{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 嚴格檢查：多寫/拼錯欄位就報錯
	if err := dec.Decode(gs); err != nil {
		if err == io.EOF {
			return nil, errs.WrapIO(err, "empty yaml document")
		}
		return nil, errs.WrapIO(err, "failed to unmarshal yaml")
	}

	// 設定檔初始化
	if err := gs.Init(); err != nil {
		return nil, errs.Wrap(err, "game setting initialized err")
	}
	return gs, nil
}

// GetGameSettingByJSON
// 會以嚴格模式讀取 JSON 設定、初始化各子設定並執行檢查後回傳
func GetGameSettingByJSON(data []byte) (*GameSetting, error) {
	gs := &GameSetting{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(gs); err != nil {
		return nil, errs.WrapIO(err, "can not unmarshal json byte")
	}
	if dec.More() {
		return nil, errs.WrapIO(errs.NewFatal("trailing data after json document"), "can not unmarshal json byte")
	}

	// 設定檔初始化
	if err := gs.Init(); err != nil {
		return nil, errs.Wrap(err, "game setting initialized err")
	}
	return gs, nil
}
