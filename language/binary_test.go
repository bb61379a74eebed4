package language

import (
	"bytes"
	"testing"
)

func Test_IsBinaryContent_SourceText(t *testing.T) {
	content := []byte("def main():\n    pass\n")
	if IsBinaryContent(content) {
		t.Error("expected source text to not be detected as binary")
	}
}

func Test_IsBinaryContent_PNGHeader(t *testing.T) {
	content := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	if !IsBinaryContent(content) {
		t.Error("expected PNG header to be detected as binary")
	}
}

func Test_IsBinaryContent_Empty(t *testing.T) {
	if IsBinaryContent(nil) {
		t.Error("expected empty content to not be detected as binary")
	}
}

func Test_IsBinaryContent_NullBeyondSniffWindow(t *testing.T) {
	content := bytes.Repeat([]byte{'a'}, 1024)
	content[800] = 0x00
	if IsBinaryContent(content) {
		t.Error("expected NUL beyond the 512-byte window to be ignored")
	}
}
