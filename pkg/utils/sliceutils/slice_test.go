package sliceutils

import (
	"reflect"
	"testing"
)

func TestDifference(t *testing.T) {
	testCases := []struct {
		name               string
		slice1             []uint32
		slice2             []uint32
		expectedDifference []uint32
	}{
		{
			name:               "empty slices",
			slice1:             []uint32{},
			slice2:             []uint32{},
			expectedDifference: []uint32{},
		},
		{
			name:               "disjoint slices",
			slice1:             []uint32{1, 2},
			slice2:             []uint32{3, 4},
			expectedDifference: []uint32{1, 2},
		},
		{
			name:               "overlapping slices",
			slice1:             []uint32{1, 2, 3},
			slice2:             []uint32{2, 3, 4},
			expectedDifference: []uint32{1},
		},
		{
			name:               "equal slices",
			slice1:             []uint32{1, 2, 3},
			slice2:             []uint32{1, 2, 3},
			expectedDifference: []uint32{},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			difference := Difference(test.slice1, test.slice2)

			if !reflect.DeepEqual(difference, test.expectedDifference) {
				t.Errorf("Difference(): expected %v, got %v", test.expectedDifference, difference)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	testCases := []struct {
		name           string
		slice          []string
		expectedUnique []string
	}{
		{
			name:           "empty slice",
			slice:          []string{},
			expectedUnique: []string{},
		},
		{
			name:           "no duplicates",
			slice:          []string{"A", "B"},
			expectedUnique: []string{"A", "B"},
		},
		{
			name:           "duplicates preserve first occurrence order",
			slice:          []string{"B", "A", "B", "C", "A"},
			expectedUnique: []string{"B", "A", "C"},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			unique := Unique(test.slice)

			if !reflect.DeepEqual(unique, test.expectedUnique) {
				t.Errorf("Unique(): expected %v, got %v", test.expectedUnique, unique)
			}
		})
	}
}
