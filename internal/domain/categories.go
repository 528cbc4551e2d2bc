package domain

// categoryNames maps provider category identifiers to display names.
// Descriptive metadata only; control flow never depends on it.
var categoryNames = map[int]string{
	9:  "General Knowledge",
	10: "Entertainment: Books",
	11: "Entertainment: Film",
	12: "Entertainment: Music",
	14: "Entertainment: Television",
	15: "Entertainment: Video Games",
	17: "Science & Nature",
	18: "Science: Computers",
	19: "Science: Mathematics",
	21: "Sports",
	22: "Geography",
	23: "History",
	27: "Animals",
}

// CategoryName resolves a category identifier to its display name.
func CategoryName(id int) (string, bool) {
	name, ok := categoryNames[id]
	return name, ok
}
