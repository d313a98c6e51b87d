package tetris

// Block glyphs used by the default shape set.
const (
	Blue   Cell = "🟦"
	Red    Cell = "🟥"
	Yellow Cell = "🟨"
	Orange Cell = "🟧"
	Purple Cell = "🟪"
	Green  Cell = "🟩"
	Brown  Cell = "🟫"
)

// Background glyphs for empty cells.
const (
	DarkBackground  Cell = "⬛"
	LightBackground Cell = "⬜"
)

// DefaultShapes is the standard set of seven tetrominoes.
var DefaultShapes = []Shape{
	{
		{Blue, Empty, Empty},
		{Blue, Blue, Blue},
	},
	{
		{Red, Red, Red},
		{Red, Empty, Empty},
	},
	{
		{Yellow, Yellow},
		{Yellow, Yellow},
	},
	{
		{Orange, Orange, Orange, Orange},
	},
	{
		{Purple, Purple, Purple},
		{Empty, Purple, Empty},
	},
	{
		{Green, Green, Empty},
		{Empty, Green, Green},
	},
	{
		{Empty, Brown, Brown},
		{Brown, Brown, Empty},
	},
}
