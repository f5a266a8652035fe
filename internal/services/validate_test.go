package services

import "testing"

func TestIsDecimalString(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{in: "45", want: true},
		{in: "0", want: true},
		{in: "35.5", want: true},
		{in: "120.9900", want: true},
		{in: "", want: false},
		{in: " 45", want: false},
		{in: "45.", want: false},
		{in: ".5", want: false},
		{in: "-3", want: false},
		{in: "1,5", want: false},
		{in: "ten", want: false},
		{in: "45 ريال", want: false},
	}

	for _, tc := range cases {
		if got := isDecimalString(tc.in); got != tc.want {
			t.Fatalf("isDecimalString(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}
