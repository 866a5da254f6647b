package handler

import (
	"bytes"
	"sync"
)

// bufferPool holds encode buffers. View responses for a full farm run to a
// few kilobytes, so buffers start larger than a typical small payload.
var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
