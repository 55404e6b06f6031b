package layouts

// AppName is shown in titles and the header.
const AppName = "Exam Whispers"

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - " + AppName
	}
	return AppName
}
