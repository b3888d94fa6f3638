// The sliceutils package collects slice set-operations used by the parsers and tests.
package sliceutils

import "slices"

/*
returns the difference between slice1 and slice2; in set notation:

- difference = slice1 - slice2

Time complexity O(n * logn + m * logm), where n and m are the lengths of the slices.
This function is much faster than converting to sets for sizes (n, m) smaller than ~10^6.
*/
func Difference(slice1, slice2 []uint32) []uint32 {

	// Sort both slices first
	slices.Sort(slice1)
	slices.Sort(slice2)
	difference := []uint32{}

	i, j := 0, 0
	lenOld, lenNew := len(slice1), len(slice2)

	// Use two pointers to compare both sorted lists
	for i < lenOld && j < lenNew {
		if slice1[i] < slice2[j] {
			// the element is in slice1 but not in slice2
			difference = append(difference, slice1[i])
			i++
		} else if slice1[i] > slice2[j] {
			j++
		} else {
			i++
			j++
		}
	}

	// Add all elements not traversed
	difference = append(difference, slice1[i:]...)
	return difference
}

// Unique() returns a new slice with the duplicates removed, preserving the
// order of first occurrence.
func Unique[S ~[]E, E comparable](s S) S {
	seen := make(map[E]struct{}, len(s))
	unique := make(S, 0, len(s))

	for _, e := range s {
		if _, exists := seen[e]; exists {
			continue
		}

		seen[e] = struct{}{}
		unique = append(unique, e)
	}

	return unique
}
