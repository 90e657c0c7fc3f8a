package templates

import (
	"time"

	"things_future/words"
)

// CardStyle holds the colors for one category's card.
type CardStyle struct {
	Lead     string
	Trail    string
	Gradient string
	Accent   string
}

// GetCardStyle returns the wording and colors around a category's word.
func GetCardStyle(c words.Category) CardStyle {
	switch c {
	case words.Future:
		return CardStyle{"In a", "future", "from-green-400 to-green-500", "text-green-500"}
	case words.Thing:
		return CardStyle{"there is a", "", "from-red-400 to-red-500", "text-red-500"}
	case words.Theme:
		return CardStyle{"related to", "what is it?", "from-blue-500 to-blue-600", "text-blue-500"}
	default:
		return CardStyle{"", "", "from-gray-400 to-gray-500", "text-gray-500"}
	}
}

// WordSize picks a font size class so long words still fit on a card.
func WordSize(word string) string {
	switch n := len([]rune(word)); {
	case n > 20:
		return "text-[18px] sm:text-[20px] md:text-[22px] lg:text-[28px]"
	case n > 15:
		return "text-[22px] sm:text-[24px] md:text-[26px] lg:text-[32px]"
	case n > 10:
		return "text-[26px] sm:text-[28px] md:text-[30px] lg:text-[36px]"
	default:
		return "text-[30px] sm:text-[32px] md:text-[34px] lg:text-[40px]"
	}
}

// FormatTimestamp renders a history entry time as "Jan 2, 2006 at 15:04".
func FormatTimestamp(t time.Time) string {
	return t.Format("Jan 2, 2006") + " at " + t.Format("15:04")
}
