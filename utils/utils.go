package utils

// ContainsString returns true iff the provided string slice hay contains
// string needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// RemoveString returns hay with every occurrence of needle removed, keeping
// the original order of the remaining elements.
func RemoveString(hay []string, needle string) []string {
	res := []string{}
	for _, str := range hay {
		if str != needle {
			res = append(res, str)
		}
	}
	return res
}

// ContainsAnyString returns true iff hay contains at least one of needles.
func ContainsAnyString(hay []string, needles []string) bool {
	for _, needle := range needles {
		if ContainsString(hay, needle) {
			return true
		}
	}
	return false
}
