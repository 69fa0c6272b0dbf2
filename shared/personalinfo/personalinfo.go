// Package personalinfo encodes a student's name, contact number and semester
// into the free-text purpose field of a locker reservation and recovers them
// again. The locker table has no dedicated columns for these values; the
// encoded block survives round trips through user edits on a best-effort basis.
//
// The round trip is lossy when the purpose text itself contains the "Name:"
// marker. That is an accepted limitation of the stored format, kept for
// compatibility with existing records.
package personalinfo

import "strings"

const (
	markerName     = "Name:"
	markerContact  = "Contact:"
	markerSemester = "Semester:"
)

// Details holds the structured fields smuggled through the purpose column.
type Details struct {
	FirstName     string
	LastName      string
	ContactNumber string
	Semester      string
}

// Encode appends the personal info block to the original purpose text using
// the stored format:
//
//	<original>. Name: <First> <Last>, Contact: <Contact>, Semester: <Semester>
//
// When the original purpose is empty the block stands alone.
func Encode(originalPurpose string, details Details) string {
	block := markerName + " " + details.FirstName + " " + details.LastName +
		", " + markerContact + " " + details.ContactNumber +
		", " + markerSemester + " " + details.Semester

	if originalPurpose == "" {
		return block
	}

	return originalPurpose + ". " + block
}

// Decode recovers the personal info block from a purpose field. Missing
// markers yield empty fields; Decode never fails, a partial result is always
// returned.
func Decode(purpose string) Details {
	var details Details

	if name := segmentAfter(purpose, markerName); name != "" {
		first, last, found := strings.Cut(name, " ")
		if found {
			details.FirstName = first
			details.LastName = last
		} else {
			details.FirstName = name
		}
	}

	details.ContactNumber = segmentAfter(purpose, markerContact)

	if idx := strings.Index(purpose, markerSemester); idx != -1 {
		semester := strings.TrimSpace(purpose[idx+len(markerSemester):])
		details.Semester = strings.TrimSuffix(semester, ".")
	}

	return details
}

// ExtractOriginal strips the encoded block and returns the user-entered
// purpose text. Text without all three markers is assumed to be a plain
// purpose and is returned unchanged.
func ExtractOriginal(purpose string) string {
	if !strings.Contains(purpose, markerName) ||
		!strings.Contains(purpose, markerContact) ||
		!strings.Contains(purpose, markerSemester) {
		return purpose
	}

	idx := strings.Index(purpose, markerName)
	if idx <= 0 {
		return ""
	}

	original := strings.TrimSpace(purpose[:idx])

	return strings.TrimSuffix(original, ".")
}

// segmentAfter returns the text between the first occurrence of marker and the
// next comma, trimmed. An absent marker yields an empty string.
func segmentAfter(purpose, marker string) string {
	idx := strings.Index(purpose, marker)
	if idx == -1 {
		return ""
	}

	rest := purpose[idx+len(marker):]
	if comma := strings.Index(rest, ","); comma != -1 {
		rest = rest[:comma]
	}

	return strings.TrimSpace(rest)
}
