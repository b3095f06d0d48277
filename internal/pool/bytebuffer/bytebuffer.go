// Package bytebuffer 封装 valyala/bytebufferpool，为帧载荷提供可复用
// 的字节缓冲区，降低频繁 make 带来的分配与 GC 压力。
package bytebuffer

import (
	"github.com/valyala/bytebufferpool"
)

// ByteBuffer 即 bytebufferpool.ByteBuffer，底层切片通过 B 字段访问。
type ByteBuffer = bytebufferpool.ByteBuffer

var pool bytebufferpool.Pool

// Get 从池中取出一个空缓冲区。
func Get() *ByteBuffer {
	return pool.Get()
}

// GetWithSize 从池中取出一个缓冲区，并保证其长度恰好为 size。
func GetWithSize(size int) *ByteBuffer {
	buf := pool.Get()
	if cap(buf.B) < size {
		buf.B = make([]byte, size)
	} else {
		buf.B = buf.B[:size]
	}
	return buf
}

// Put 将缓冲区归还给池。归还后调用方不得继续引用其底层切片。
func Put(buf *ByteBuffer) {
	pool.Put(buf)
}
