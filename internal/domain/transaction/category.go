package transaction

import "strings"

// CategoryOther is returned when no keyword set matches the description.
const CategoryOther = "other"

// categoryKeywords is an ordered list: the first category whose keyword set
// matches the description wins. Keywords are matched case-insensitively as
// substrings, the way the upstream sandbox bank writes its free-text
// transactionInformation fields.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"groceries", []string{"супермаркет", "продукты", "магазин"}},
	{"dining", []string{"ресторан", "кафе", "бар"}},
	{"transport", []string{"транспорт", "такси", "метро"}},
	{"healthcare", []string{"аптека", "врач", "клиника"}},
	{"entertainment", []string{"кино", "театр", "развлечения"}},
}

// Categorize maps a transaction's free-text description to a category label.
// Pure and total: every input, including the empty string, yields a
// non-empty label.
func Categorize(description string) string {
	if description == "" {
		return CategoryOther
	}

	lower := strings.ToLower(description)
	for _, set := range categoryKeywords {
		for _, keyword := range set.keywords {
			if strings.Contains(lower, keyword) {
				return set.category
			}
		}
	}

	return CategoryOther
}
