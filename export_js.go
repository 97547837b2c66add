//go:build js && wasm

package tooni

import (
	"encoding/base64"
	"syscall/js"
)

// BrowserDownloader triggers a client-side download through a temporary
// anchor element.
type BrowserDownloader struct{}

// Download clicks a detached <a download> pointing at a data URL of data.
func (BrowserDownloader) Download(name string, data []byte) error {
	doc := js.Global().Get("document")
	link := doc.Call("createElement", "a")
	link.Set("href", "data:image/png;base64,"+base64.StdEncoding.EncodeToString(data))
	link.Set("download", sanitizeName(name))
	body := doc.Get("body")
	body.Call("appendChild", link)
	link.Call("click")
	body.Call("removeChild", link)
	return nil
}
