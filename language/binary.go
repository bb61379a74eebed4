package language

import "bytes"

// IsBinaryContent reports whether data looks like binary rather than source
// text. A NUL byte within the first 512 bytes is treated as binary.
func IsBinaryContent(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.IndexByte(head, 0) >= 0
}
