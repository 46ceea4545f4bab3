package pool

// Category names one of the four entity kinds the pool manages. The set
// is closed; nothing extends it at runtime.
type Category int

const (
	CategoryPlayer Category = iota
	CategoryGround
	CategoryRolling
	CategoryFlying

	categoryCount
)

func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryGround:
		return "ground"
	case CategoryRolling:
		return "rolling"
	case CategoryFlying:
		return "flying"
	}
	return "unknown"
}

// Valid reports whether c names one of the managed categories.
func (c Category) Valid() bool {
	return c >= 0 && c < categoryCount
}

// ParseCategory maps a category name to its value. Pacing scripts refer
// to categories by name.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "player":
		return CategoryPlayer, true
	case "ground":
		return CategoryGround, true
	case "rolling":
		return CategoryRolling, true
	case "flying":
		return CategoryFlying, true
	}
	return 0, false
}

// Categories returns the managed categories in declaration order.
func Categories() []Category {
	return []Category{CategoryPlayer, CategoryGround, CategoryRolling, CategoryFlying}
}
