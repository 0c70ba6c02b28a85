package utils

import (
	"testing"

	"csv-manager/internal/model"
)

func TestParseScalar(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want model.Value
	}{
		{"nil", nil, model.NullValue()},
		{"string", "hello", model.StringValue("hello")},
		{"bool", true, model.BoolValue(true)},
		{"float", 3.5, model.NumberValue(3.5)},
		{"int", 3, model.NumberValue(3)},
		{"unknown type stringifies", []int{1, 2}, model.StringValue("[1 2]")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseScalar(tc.in); got != tc.want {
				t.Errorf("ParseScalar(%v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanHeader(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{" name ", "name"},
		{`"city"`, "city"},
		{` "mixed" `, "mixed"},
		{"plain", "plain"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := CleanHeader(tc.in); got != tc.want {
			t.Errorf("CleanHeader(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseIntDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"", 20, 20},
		{"7", 20, 7},
		{"abc", 20, 20},
		{"-3", 20, 20},
		{"0", 20, 20},
	}
	for _, tc := range cases {
		if got := ParseIntDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("ParseIntDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}
