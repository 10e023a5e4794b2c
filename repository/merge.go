package repository

// Scalar merge helpers for partial updates: an absent field in the request
// payload keeps the stored value, only an explicit new value overwrites it.

func mergeString(newValue *string, current string) string {
	if newValue != nil {
		return *newValue
	}
	return current
}

func mergeFloat(newValue *float64, current float64) float64 {
	if newValue != nil {
		return *newValue
	}
	return current
}

func mergeInt64(newValue *int64, current int64) int64 {
	if newValue != nil {
		return *newValue
	}
	return current
}

func mergeInt64Ref(newValue *int64, current *int64) *int64 {
	if newValue != nil {
		return newValue
	}
	return current
}

func mergeBool(newValue *bool, current bool) bool {
	if newValue != nil {
		return *newValue
	}
	return current
}
