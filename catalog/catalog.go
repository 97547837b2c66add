// Package catalog is the compiled-in registry of overlay items a user can
// place on the character, grouped by category.
package catalog

import (
	"path"
	"strings"
)

// Category names a group of overlay items. The value doubles as the image
// subdirectory the items are served from.
type Category string

const (
	Face Category = "face" // glasses, eyepatch
	Hand Category = "hand" // props held in the hand
	Head Category = "head" // hats, headgear, hair
)

// Item is one selectable overlay. File identifies the item within its
// category and is the image file name; Name is display-only.
type Item struct {
	File string
	Name string
}

// Label returns the file name without its extension. Useful when the HUD
// font has no glyphs for Name.
func (it Item) Label() string {
	return strings.TrimSuffix(it.File, path.Ext(it.File))
}

var categories = []Category{Face, Hand, Head}

var items = map[Category][]Item{
	Face: {
		{File: "Sunglasses_color.png", Name: "컬러 선글라스"},
		{File: "Sunglasses_black.png", Name: "블랙 선글라스"},
		{File: "Glasses_NoLenses.png", Name: "안경테"},
		{File: "Glasses_round.png", Name: "동글이 안경"},
		{File: "Glasses_Lenses.png", Name: "안경"},
		{File: "Eyepatch.png", Name: "안대"},
	},
	Hand: {
		{File: "TennisRacket.png", Name: "테니스 라켓"},
		{File: "Hamburger.png", Name: "햄버거"},
		{File: "MacBook.png", Name: "맥북"},
		{File: "Coffee.png", Name: "커피"},
		{File: "BoxingGloves.png", Name: "복싱 글러브"},
		{File: "AppleWatch.png", Name: "애플워치"},
		{File: "BasketballBall.png", Name: "농구공"},
	},
	Head: {
		{File: "Headgear.png", Name: "헤드기어"},
		{File: "BaseballCap.png", Name: "야구모자"},
		{File: "Hardhat.png", Name: "안전모"},
		{File: "Bangs.png", Name: "앞머리"},
		{File: "AirpodMax.png", Name: "에어팟 맥스"},
	},
}

// ListCategories returns every category mapped to its items in display
// order. The result is a copy; callers may modify it freely.
func ListCategories() map[Category][]Item {
	out := make(map[Category][]Item, len(items))
	for c, list := range items {
		out[c] = append([]Item(nil), list...)
	}
	return out
}

// Categories returns the category names in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Lookup finds the item with the given file name in a category.
func Lookup(c Category, file string) (Item, bool) {
	for _, it := range items[c] {
		if it.File == file {
			return it, true
		}
	}
	return Item{}, false
}
