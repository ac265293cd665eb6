package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "movieform-form"
	ClassResults ChromeClass = "movieform-results"
	ClassCard    ChromeClass = "movie-card"
	ClassAlert   ChromeClass = "alert alert-danger"
	ClassErrors  ChromeClass = "movieform-errors"
	ClassEmpty   ChromeClass = "lead"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":    string(ClassForm),
		"results": string(ClassResults),
		"card":    string(ClassCard),
		"alert":   string(ClassAlert),
		"errors":  string(ClassErrors),
		"empty":   string(ClassEmpty),
	}
}
