package main

import "os"

// 單局 CLI：讀取設定、跑一局並把結果以 JSON / YAML 印到 stdout
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
