// Package keymap is the keyboard layout shared by the text based frontends.
//
//	Keypad       Keyboard
//	1 2 3 C      1 2 3 4
//	4 5 6 D      Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
package keymap

import "unicode"

// Layout is the keyboard rune for each keypad index, lowercase.
var Layout = [16]rune{
	0x0: 'x',
	0x1: '1',
	0x2: '2',
	0x3: '3',
	0x4: 'q',
	0x5: 'w',
	0x6: 'e',
	0x7: 'a',
	0x8: 's',
	0x9: 'd',
	0xA: 'z',
	0xB: 'c',
	0xC: '4',
	0xD: 'r',
	0xE: 'f',
	0xF: 'v',
}

var byRune = func() map[rune]int {
	m := make(map[rune]int, len(Layout))
	for key, r := range Layout {
		m[r] = key
	}
	return m
}()

// Key returns the keypad index for r. Letters match in either case.
func Key(r rune) (int, bool) {
	key, ok := byRune[unicode.ToLower(r)]
	return key, ok
}

// Rune returns the keyboard rune of keypad index key, or 0 if key is not a
// keypad index.
func Rune(key int) rune {
	if key < 0 || key >= len(Layout) {
		return 0
	}
	return Layout[key]
}
