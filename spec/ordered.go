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

package spec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/zintix-labs/scratchlab/errs"
	"gopkg.in/yaml.v3"
)

// Entry 為 OrderedMap 中的一筆鍵值。
type Entry[V any] struct {
	Key   string
	Value V
}

// OrderedMap 是保留「文件順序」的 mapping。
//
// Go 的 map 迭代順序是隨機的，但權重抽樣與獎勵計算都需要固定順序，
// 因此設定檔中所有 mapping（symbols、每格權重、win_combinations）都解析成 OrderedMap。
// 同一個 key 出現兩次視為設定錯誤。
type OrderedMap[V any] []Entry[V]

// Get 依 key 取值（線性查找，只在初始化階段使用）。
func (m OrderedMap[V]) Get(key string) (V, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// Keys 依文件順序回傳所有 key。
func (m OrderedMap[V]) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// Values 依文件順序回傳所有 value。
func (m OrderedMap[V]) Values() []V {
	vals := make([]V, len(m))
	for i, e := range m {
		vals[i] = e.Value
	}
	return vals
}

// UnmarshalYAML 以 yaml.Node 逐對讀取 mapping，保留順序。
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errs.Configf("line %d: expected a mapping", node.Line)
	}
	out := make(OrderedMap[V], 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if _, dup := seen[k.Value]; dup {
			return errs.Configf("line %d: duplicate key %q", k.Line, k.Value)
		}
		seen[k.Value] = struct{}{}
		var val V
		if err := decodeNodeStrict(v, &val); err != nil {
			return errs.WrapWithExtra(err, "decode mapping value failed", k.Value)
		}
		out = append(out, Entry[V]{Key: k.Value, Value: val})
	}
	*m = out
	return nil
}

// UnmarshalJSON 以 token stream 逐對讀取 object，保留順序。
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	tok, err := dec.Token()
	if err != nil {
		return errs.WrapIO(err, "read json token failed")
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errs.Configf("expected a json object, got %v", tok)
	}
	out := make(OrderedMap[V], 0)
	seen := make(map[string]struct{})
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return errs.WrapIO(err, "read json key failed")
		}
		key, ok := kt.(string)
		if !ok {
			return errs.Configf("expected a string key, got %v", kt)
		}
		if _, dup := seen[key]; dup {
			return errs.Configf("duplicate key %q", key)
		}
		seen[key] = struct{}{}
		var val V
		if err := dec.Decode(&val); err != nil {
			return errs.WrapWithExtra(errs.WrapIO(err, "decode json value failed"), "decode mapping value failed", key)
		}
		out = append(out, Entry[V]{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return errs.WrapIO(err, "read json closing token failed")
	}
	*m = out
	return nil
}

// MarshalYAML 依順序輸出 mapping。
func (m OrderedMap[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range m {
		var v yaml.Node
		if err := v.Encode(e.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: e.Key}, &v)
	}
	return node, nil
}

// MarshalJSON 依順序輸出 object。
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// decodeNodeStrict 把子節點轉回 YAML 再以 KnownFields 嚴格解析。
//
// node.Decode 不會繼承外層 Decoder 的 KnownFields 設定，多寫/拼錯欄位會被默默忽略。
func decodeNodeStrict(node *yaml.Node, out any) error {
	bs, err := yaml.Marshal(node)
	if err != nil {
		return errs.WrapIO(err, "re-encode yaml node failed")
	}
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return errs.WrapIO(err, fmt.Sprintf("line %d: strict decode failed", node.Line))
	}
	return nil
}
