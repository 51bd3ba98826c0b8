package main

import "os"

// 模擬 CLI：跑 N 局並輸出 RTP 報表
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
