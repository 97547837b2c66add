//go:build !(js && wasm)

package main

import (
	"github.com/phanxgames/tooni"
	"github.com/phanxgames/tooni/config"
)

func newDownloader(cfg config.Config) tooni.Downloader {
	return tooni.DirDownloader{Dir: cfg.ExportDir}
}
