package dao

// MaxResultSize defines the maximum limit of rows returned from a listing
// query to the database.
const MaxResultSize int = 10000

// GetSanitizedLimit takes an input number and ensures it is within the range
// 1 .. 10000. A non-positive value means no explicit limit was requested and
// yields the maximum.
func GetSanitizedLimit(limit int) int {
	if limit < 1 {
		return MaxResultSize
	}
	if limit > MaxResultSize {
		return MaxResultSize
	}
	return limit
}

// GetSanitizedOffset takes an input number and ensures that it is no less
// than 0.
func GetSanitizedOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
