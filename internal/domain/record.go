package domain

// TotalSeriesLabel is the display label for the aggregate violent-crime series.
// It is always charted for a city, regardless of which categories are selected.
const TotalSeriesLabel = "Total Violent Crimes"

// Category identifies one of the four violent-crime categories tracked per city.
type Category string

const (
	CategoryHomicide Category = "homicide"
	CategoryRape     Category = "rape"
	CategoryRobbery  Category = "robbery"
	CategoryAssault  Category = "assault"
)

// Categories returns the four categories in canonical display order.
func Categories() []Category {
	return []Category{CategoryHomicide, CategoryRape, CategoryRobbery, CategoryAssault}
}

// ParseCategory normalizes a user-supplied category name.
// ok is false for names outside the four known categories.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryHomicide, CategoryRape, CategoryRobbery, CategoryAssault:
		return Category(s), true
	default:
		return "", false
	}
}

// Display returns the human-facing series label for the category.
func (c Category) Display() string {
	switch c {
	case CategoryHomicide:
		return "Homicide"
	case CategoryRape:
		return "Rape"
	case CategoryRobbery:
		return "Robbery"
	case CategoryAssault:
		return "Aggravated Assault"
	default:
		return string(c)
	}
}

// CategorySet is a selection of crime categories, as toggled by checkbox widgets.
// The zero value (nil) is a valid empty selection.
type CategorySet map[Category]bool

// NewCategorySet builds a set from known categories.
func NewCategorySet(cats ...Category) CategorySet {
	set := make(CategorySet, len(cats))
	for _, c := range cats {
		set[c] = true
	}
	return set
}

// ParseCategorySet builds a set from user-supplied names.
// Unknown names are dropped silently; the caller renders whatever remains.
func ParseCategorySet(names []string) CategorySet {
	set := make(CategorySet, len(names))
	for _, n := range names {
		if c, ok := ParseCategory(n); ok {
			set[c] = true
		}
	}
	return set
}

// Has reports whether the category is selected.
func (s CategorySet) Has(c Category) bool {
	return s[c]
}

// RawRecord holds one unparsed CSV row, column values exactly as written in the file.
type RawRecord struct {
	City     string
	Year     string
	Lat      string
	Lon      string
	TotalPop string
	Violent  string
	Homicide string
	Rape     string
	Robbery  string
	Assault  string
}

// CrimeRecord is one city's statistics for one year after parsing.
// Rate fields hold NaN when the source cell is missing; see [ParseRecord].
type CrimeRecord struct {
	City            string
	Year            int
	Lat             float64
	Lon             float64
	TotalPop        int
	ViolentPer100k  float64
	HomicidePer100k float64
	RapePer100k     float64
	RobberyPer100k  float64
	AssaultPer100k  float64
}

// Rate returns the per-100k rate for the given category.
// NaN means the value is missing for that city and year.
func (r CrimeRecord) Rate(c Category) float64 {
	switch c {
	case CategoryHomicide:
		return r.HomicidePer100k
	case CategoryRape:
		return r.RapePer100k
	case CategoryRobbery:
		return r.RobberyPer100k
	case CategoryAssault:
		return r.AssaultPer100k
	default:
		return 0
	}
}
