package vm

// The line printer's two 64-glyph code pages. Codes 00..37 are shared:
// digits, punctuation and a few mathematical symbols. Codes 40..77 carry the
// Cyrillic alphabet on the Russian drum and Latin capitals (in the machine's
// own order) on the Latin one. Code 77 is an en dash on both.
var russianChars = [64]rune{
	'0', '1', '2', '3', '4', '5', '6', '7', // 0x
	'8', '9', '+', '-', '/', ',', '.', ' ', // 1x
	'Ⅹ', '^', '(', ')', '×', '=', ';', '[', // 2x
	']', '*', '`', '\'', '≠', '<', '>', ':', // 3x
	'А', 'Б', 'В', 'Г', 'Д', 'Е', 'Ж', 'З', // 4x
	'И', 'Й', 'К', 'Л', 'М', 'Н', 'О', 'П', // 5x
	'Р', 'С', 'Т', 'У', 'Ф', 'Х', 'Ц', 'Ч', // 6x
	'Ш', 'Щ', 'Ы', 'Ь', 'Э', 'Ю', 'Я', '–', // 7x
}

var latinChars = [64]rune{
	'0', '1', '2', '3', '4', '5', '6', '7', // 0x
	'8', '9', '+', '-', '/', ',', '.', ' ', // 1x
	'Ⅹ', '^', '(', ')', '×', '=', ';', '[', // 2x
	']', '*', '`', '\'', '≠', '<', '>', ':', // 3x
	'A', 'B', 'W', 'G', 'D', 'E', 'V', 'Z', // 4x
	'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', // 5x
	'R', 'S', 'T', 'U', 'F', 'H', 'C', ' ', // 6x
	' ', ' ', 'Y', 'X', ' ', ' ', 'Q', '–', // 7x
}
