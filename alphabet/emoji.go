package alphabet

// emojiRanges are the inclusive code point blocks the default table is cut
// from, in index order.
var emojiRanges = [...][2]rune{
	{0x1F300, 0x1F5FF}, // Miscellaneous Symbols and Pictographs
	{0x1F600, 0x1F64F}, // Emoticons
	{0x1F680, 0x1F6FF}, // Transport and Map Symbols
	{0x1F900, 0x1F92F}, // Supplemental Symbols and Pictographs, first rows
}

// Emoji is the default alphabet.
var Emoji = MustNew(emojiSymbols())

func emojiSymbols() []rune {
	out := make([]rune, 0, Size)
	for _, rg := range emojiRanges {
		for r := rg[0]; r <= rg[1]; r++ {
			out = append(out, r)
		}
	}
	return out
}
