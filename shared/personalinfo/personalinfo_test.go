package personalinfo_test

import (
	"campus/shared/personalinfo"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	details := personalinfo.Details{
		FirstName:     "Juan",
		LastName:      "Dela Cruz",
		ContactNumber: "09171234567",
		Semester:      "1st Semester 2025",
	}

	t.Run("with original purpose", func(t *testing.T) {
		got := personalinfo.Encode("Store books", details)

		assert.Equal(t, "Store books. Name: Juan Dela Cruz, Contact: 09171234567, Semester: 1st Semester 2025", got)
	})

	t.Run("without original purpose", func(t *testing.T) {
		got := personalinfo.Encode("", details)

		assert.Equal(t, "Name: Juan Dela Cruz, Contact: 09171234567, Semester: 1st Semester 2025", got)
	})
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		purpose string
		want    personalinfo.Details
	}{
		{
			name:    "full block with purpose prefix",
			purpose: "Store books. Name: Juan Cruz, Contact: 09171234567, Semester: 1st",
			want: personalinfo.Details{
				FirstName:     "Juan",
				LastName:      "Cruz",
				ContactNumber: "09171234567",
				Semester:      "1st",
			},
		},
		{
			name:    "single name token becomes first name",
			purpose: "Name: Juan, Contact: 123, Semester: 2nd",
			want: personalinfo.Details{
				FirstName:     "Juan",
				ContactNumber: "123",
				Semester:      "2nd",
			},
		},
		{
			name:    "semester trailing period stripped",
			purpose: "Name: A B, Contact: 1, Semester: Summer.",
			want: personalinfo.Details{
				FirstName:     "A",
				LastName:      "B",
				ContactNumber: "1",
				Semester:      "Summer",
			},
		},
		{
			name:    "missing markers yield empty fields",
			purpose: "just a plain purpose",
			want:    personalinfo.Details{},
		},
		{
			name:    "contact marker only",
			purpose: "Contact: 555, something else",
			want: personalinfo.Details{
				ContactNumber: "555",
			},
		},
		{
			name:    "empty input",
			purpose: "",
			want:    personalinfo.Details{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, personalinfo.Decode(tt.purpose))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	inputs := []personalinfo.Details{
		{FirstName: "Maria", LastName: "Santos", ContactNumber: "09998887777", Semester: "2nd Semester"},
		{FirstName: "Ana", LastName: "Reyes Lopez", ContactNumber: "123-4567", Semester: "Summer"},
	}

	for _, details := range inputs {
		encoded := personalinfo.Encode("Locker near the gym", details)

		assert.Equal(t, details, personalinfo.Decode(encoded))
	}
}

func TestExtractOriginal(t *testing.T) {
	tests := []struct {
		name    string
		purpose string
		want    string
	}{
		{
			name:    "round trip recovers the original purpose",
			purpose: personalinfo.Encode("My purpose", personalinfo.Details{FirstName: "f", LastName: "l", ContactNumber: "c", Semester: "s"}),
			want:    "My purpose",
		},
		{
			name:    "plain purpose returned unchanged",
			purpose: "keep my sports gear",
			want:    "keep my sports gear",
		},
		{
			name:    "partial markers returned unchanged",
			purpose: "Name: Juan Cruz only",
			want:    "Name: Juan Cruz only",
		},
		{
			name:    "block alone yields empty original",
			purpose: "Name: Juan Cruz, Contact: 1, Semester: 1st",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, personalinfo.ExtractOriginal(tt.purpose))
		})
	}
}
