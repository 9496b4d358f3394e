package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconSprout    = "\U000F0E0D" // 󰸍
	IconCheckList = " "
	IconCheck     = "✓"
	IconCircle    = "○"
	IconDot       = "·"
	IconStar      = "★"
)
