package charconv

// Full-width forms block handled by the offset rule.
const (
	FullWidthFirst  rune = 0xFF01
	FullWidthLast   rune = 0xFF5E
	FullWidthOffset rune = 0xFEE0

	// IdeographicSpace is the full-width space, mapped to an ASCII space.
	IdeographicSpace rune = '　'
)

// FullWidthTable maps full-width punctuation to ASCII. Code points in
// [FullWidthFirst, FullWidthLast] that are missing here are shifted by
// FullWidthOffset instead.
var FullWidthTable = map[rune]rune{
	'！': '!', '＂': '"', '＃': '#', '＄': '$', '％': '%', '＆': '&', '＇': '\'',
	'（': '(', '）': ')', '＊': '*', '＋': '+', '，': ',', '－': '-', '．': '.',
	'／': '/', '：': ':', '；': ';', '＜': '<', '＝': '=', '＞': '>', '？': '?',
	'＠': '@', '［': '[', '＼': '\\', '］': ']', '＾': '^', '＿': '_', '｀': '`',
	'｛': '{', '｜': '|', '｝': '}', '～': '~',
}

// QuoteTable collapses curly quotes to their ASCII forms.
var QuoteTable = map[rune]rune{
	'“': '"',
	'”': '"',
	'‘': '\'',
	'’': '\'',
}

// PunctuationTable maps CJK punctuation to ASCII.
var PunctuationTable = map[rune]rune{
	'、': ',', '，': ',',
	'。': '.', '．': '.',
	'！': '!',
	'？': '?',
	'：': ':',
	'；': ';',
	'（': '(',
	'）': ')',
}
