package models

import (
	"reflect"
	"testing"
)

func TestJoinDays(t *testing.T) {
	got := JoinDays([]string{" Mon", "TUE", "funday", "", "sun"})
	if got != "mon,tue,sun" {
		t.Errorf("JoinDays = %q, want %q", got, "mon,tue,sun")
	}
	if JoinDays(nil) != "" {
		t.Error("JoinDays(nil) should be empty")
	}
}

func TestSplitDays(t *testing.T) {
	got := SplitDays("mon,tue,sun")
	want := []string{"mon", "tue", "sun"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitDays = %v, want %v", got, want)
	}
	if got := SplitDays(""); len(got) != 0 {
		t.Errorf("SplitDays(\"\") = %v, want empty", got)
	}
}
