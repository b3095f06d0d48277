// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recordio

import (
	"io"
	"os"

	"google.golang.org/protobuf/proto"

	"github.com/lk2023060901/record-garden-go/pkg/log"
	"github.com/lk2023060901/record-garden-go/pkg/util/merr"
)

// WriteFile truncates path and writes msg as its single record.
func WriteFile(path string, msg proto.Message) error {
	return writeFileFlags(path, msg, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// AppendFile appends msg as one record to path, creating it if absent.
func AppendFile(path string, msg proto.Message) error {
	return writeFileFlags(path, msg, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

func writeFileFlags(path string, msg proto.Message, flags int) error {
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return merr.WrapErrIoFailed(path, err)
	}
	werr := Write(f, msg)
	closeQuietly(f, path)
	return werr
}

// ReadFile reads the first record of path into msg.
func ReadFile(path string, msg proto.Message, opts ...ReadOption) error {
	f, err := os.Open(path)
	if err != nil {
		return merr.WrapErrIoFailed(path, err)
	}
	rerr := Read(f, msg, opts...)
	closeQuietly(f, path)
	return rerr
}

// closeQuietly 关闭文件。关闭失败只记录日志，不改变调用方的返回值。
func closeQuietly(f *os.File, path string) {
	if err := f.Close(); err != nil {
		log.With(log.FieldComponent("recordio")).Warn("failed to close file",
			log.FieldPath(path))
	}
}

// Reader drains successive records from a stream with a fixed set of
// read options.
type Reader struct {
	r    io.Reader
	opts []ReadOption
}

func NewReader(r io.Reader, opts ...ReadOption) *Reader {
	return &Reader{r: r, opts: opts}
}

// Next reads the next record into msg, returning io.EOF at end of
// stream.
func (r *Reader) Next(msg proto.Message) error {
	return Read(r.r, msg, r.opts...)
}

// Writer appends successive records to a stream.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(msg proto.Message) error {
	return Write(w.w, msg)
}
