package tui

import (
	"testing"
)

func TestFramePutClips(t *testing.T) {
	f := newFrame(6, 2)
	f.put(4, 0, "abcd")
	f.put(-2, 1, "wxyz")
	f.put(0, 5, "ignored")

	if f[0] != "    ab" {
		t.Fatalf("row 0 = %q", f[0])
	}
	if f[1] != "yz    " {
		t.Fatalf("row 1 = %q", f[1])
	}
}

func TestFramePutBlock(t *testing.T) {
	f := newFrame(5, 3)
	f.putBlock(1, 1, "ab\ncd\nef")
	if got := f.String(); got != "     \n ab  \n cd  " {
		t.Fatalf("frame = %q", got)
	}
}

func TestFitAnsiWidth(t *testing.T) {
	if got := fitAnsiWidth("abc", 5); got != "abc  " {
		t.Fatalf("pad = %q", got)
	}
	if got := fitAnsiWidth("abcdef", 3); got != "abc" {
		t.Fatalf("cut = %q", got)
	}
	if got := fitAnsiWidth("abc", 0); got != "" {
		t.Fatalf("zero = %q", got)
	}
}
