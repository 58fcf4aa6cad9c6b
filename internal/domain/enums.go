package domain

// Category is one of the four fixed print positions a color can occupy.
type Category string

const (
	CategoryFront   Category = "Front"
	CategorySpFront Category = "Sp. Front"
	CategoryBack    Category = "Back"
	CategorySpBack  Category = "Sp. Back"
)

// Categories lists every category in payload order.
var Categories = []Category{CategoryFront, CategorySpFront, CategoryBack, CategorySpBack}

// ParseCategory maps a raw print-position tag onto a Category.
// Matching is exact and case-sensitive; unknown tags return ok=false.
func ParseCategory(tag string) (Category, bool) {
	switch Category(tag) {
	case CategoryFront, CategorySpFront, CategoryBack, CategorySpBack:
		return Category(tag), true
	default:
		return "", false
	}
}

// Index returns the category's position in Categories, or -1.
func (c Category) Index() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return -1
}

func (c Category) String() string { return string(c) }

// ItemGroupColor is the item group every rebuilt color assignment carries.
const ItemGroupColor = 3
