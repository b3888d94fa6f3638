package redisutils

import "strconv"

// FormatID() formats a nodeID (uint32) into a string
func FormatID(ID uint32) string {
	return strconv.FormatUint(uint64(ID), 10)
}

// FormatIDs() formats a slice of nodeIDs into a slice of strings
func FormatIDs(IDs []uint32) []string {
	strIDs := make([]string, 0, len(IDs))
	for _, ID := range IDs {
		strIDs = append(strIDs, FormatID(ID))
	}

	return strIDs
}

// ParseID() parses a nodeID (uint32) from the specified string
func ParseID(strVal string) (uint32, error) {
	parsedVal, err := strconv.ParseUint(strVal, 10, 32)
	return uint32(parsedVal), err
}

// ParseIDs() parses a slice of nodeIDs from the specified strings
func ParseIDs(strVals []string) ([]uint32, error) {
	IDs := make([]uint32, 0, len(strVals))
	for _, strVal := range strVals {
		ID, err := ParseID(strVal)
		if err != nil {
			return nil, err
		}

		IDs = append(IDs, ID)
	}

	return IDs, nil
}

// ParseFloat64() parses a float64 from the specified string
func ParseFloat64(strVal string) (float64, error) {
	parsedVal, err := strconv.ParseFloat(strVal, 64)
	return parsedVal, err
}
