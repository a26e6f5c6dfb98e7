package otp

import "testing"

func TestNumericGenerate(t *testing.T) {
	// Arrange
	gen := NewNumeric()

	// Act & Assert
	for i := 0; i < 1000; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if code < Min || code > Max {
			t.Fatalf("code %d out of range [%d, %d]", code, Min, Max)
		}
	}
}

func TestFormat(t *testing.T) {
	// Arrange
	cases := map[int]string{
		100000: "100000",
		654321: "654321",
		999999: "999999",
	}

	// Act & Assert
	for code, want := range cases {
		if got := Format(code); got != want {
			t.Fatalf("Format(%d) = %q, want %q", code, got, want)
		}
	}
}
