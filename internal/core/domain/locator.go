package domain

// Dedupe removes locators that exactly match an earlier entry.
// Comparison is byte-exact: case, trailing slashes and query strings are
// significant. The first occurrence of each locator keeps its position.
func Dedupe(locators []string) []string {
	if len(locators) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(locators))
	result := make([]string, 0, len(locators))
	for _, locator := range locators {
		if _, ok := seen[locator]; ok {
			continue
		}
		seen[locator] = struct{}{}
		result = append(result, locator)
	}
	return result
}
