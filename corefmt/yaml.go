package corefmt

import (
	"io"

	"gopkg.in/yaml.v3"
)

// WriteReadableYAML 以 yaml.v3 輸出 v。
//
// 外層的陣列（YAML Sequence）維持預設展開；只由純量組成的一維陣列輸出成 flow style：[..., ...]，
// 例如盤面的每一列、統計報表的區間表。
func WriteReadableYAML(w io.Writer, v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return err
	}
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(&node)
}

func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}

	case yaml.SequenceNode:
		// 先判斷這個 sequence 是否包含子 sequence / mapping（代表外層維度）
		nested := false
		for _, c := range n.Content {
			if c != nil && (c.Kind == yaml.SequenceNode || c.Kind == yaml.MappingNode) {
				nested = true
				break
			}
		}
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
		if !nested {
			n.Style = yaml.FlowStyle
		}
	}
}
