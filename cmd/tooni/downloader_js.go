//go:build js && wasm

package main

import (
	"github.com/phanxgames/tooni"
	"github.com/phanxgames/tooni/config"
)

func newDownloader(config.Config) tooni.Downloader {
	return tooni.BrowserDownloader{}
}
