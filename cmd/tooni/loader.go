//go:build !(js && wasm)

package main

import (
	"os"

	"github.com/phanxgames/tooni"
	"github.com/phanxgames/tooni/config"
)

func defaultLoader(cfg config.Config) (tooni.ImageLoader, error) {
	return tooni.NewAssetLoader(os.DirFS(cfg.AssetsDir)), nil
}
