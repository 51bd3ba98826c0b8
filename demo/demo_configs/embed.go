package demo_configs

import (
	"embed"
)

// FS provides embedded demo configurations (JSON and YAML) for the CLIs and tests.
//
//go:embed *.json *.yaml
var FS embed.FS

const (
	Classic = "classic_3x3.json"
	Wide    = "wide_4x5.yaml"
)
