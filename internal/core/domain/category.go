package domain

// LessonCategory is attached to a lesson when it is created. Presentation
// data is looked up from the category, never derived from the title.
type LessonCategory string

const (
	CategoryYoga       LessonCategory = "yoga"
	CategoryPilates    LessonCategory = "pilates"
	CategoryStretching LessonCategory = "stretching"
	CategoryMeditation LessonCategory = "meditation"
	CategoryOther      LessonCategory = "other"
)

type CategoryPresentation struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var categoryPresentations = map[LessonCategory]CategoryPresentation{
	CategoryYoga:       {Icon: "yoga", Color: "#7FB069"},
	CategoryPilates:    {Icon: "pilates", Color: "#E6AA68"},
	CategoryStretching: {Icon: "stretch", Color: "#5DA9E9"},
	CategoryMeditation: {Icon: "lotus", Color: "#A77DC2"},
	CategoryOther:      {Icon: "calendar", Color: "#9E9E9E"},
}

func ParseCategory(s string) LessonCategory {
	c := LessonCategory(s)
	if _, ok := categoryPresentations[c]; ok {
		return c
	}
	return CategoryOther
}

func (c LessonCategory) Presentation() CategoryPresentation {
	if p, ok := categoryPresentations[c]; ok {
		return p
	}
	return categoryPresentations[CategoryOther]
}
