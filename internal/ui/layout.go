package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which secondary columns hide.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show genre and year columns.
	LayoutWideWidth = 130
)

// chromeHeight is the number of lines taken by header, banner and footer.
const chromeHeight = 4
