//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/phanxgames/tooni"
	"github.com/phanxgames/tooni/config"
)

// defaultLoader fetches images from the server that hosts the page. The
// wasm os package has no file system to read from.
func defaultLoader(config.Config) (tooni.ImageLoader, error) {
	base, err := pageBase(js.Global().Get("location").Get("href").String())
	if err != nil {
		return nil, err
	}
	return tooni.NewHTTPLoader(base, nil)
}
