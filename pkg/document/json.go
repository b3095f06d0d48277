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

package document

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/lk2023060901/record-garden-go/pkg/util/merr"
)

// jsonAPI 为 document 包统一使用的 jsoniter 配置。
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal renders v as JSON text. Object member order is preserved,
// which is why this package drives the jsoniter stream directly instead
// of going through an intermediate map.
func Marshal(v Value) ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	writeValue(stream, v)
	if stream.Error != nil {
		return nil, merr.WrapErrParameterInvalidMsg("failed to encode document: %v", stream.Error)
	}

	buf := stream.Buffer()
	out := make([]byte, len(buf))
	copy(out, buf)
	return out, nil
}

// MarshalString is a convenience form of Marshal.
func MarshalString(v Value) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeValue(stream *jsoniter.Stream, v Value) {
	switch v := v.(type) {
	case Object:
		stream.WriteObjectStart()
		for i := range v {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(v[i].Name)
			writeValue(stream, v[i].Value)
		}
		stream.WriteObjectEnd()
	case Array:
		stream.WriteArrayStart()
		for i := range v {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, v[i])
		}
		stream.WriteArrayEnd()
	case String:
		stream.WriteString(string(v))
	case Number:
		stream.WriteFloat64(float64(v))
	case Boolean:
		stream.WriteBool(bool(v))
	case Null:
		stream.WriteNil()
	default:
		panic(fmt.Sprintf("unhandled document value type: %T", v))
	}
}

// Unmarshal parses JSON text into a Value, preserving object member
// order.
func Unmarshal(data []byte) (Value, error) {
	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	v := readValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, merr.WrapErrParameterInvalidMsg("failed to parse document: %v", iter.Error)
	}
	if iter.Error == nil {
		// 首个值之后只允许空白。io.EOF 表示输入恰好耗尽，
		// 其余情况说明后面还挂着多余内容。
		iter.WhatIsNext()
		if iter.Error != io.EOF {
			return nil, merr.WrapErrParameterInvalidMsg("unexpected trailing data after document")
		}
	}
	return v, nil
}

// UnmarshalString is a convenience form of Unmarshal.
func UnmarshalString(data string) (Value, error) {
	return Unmarshal([]byte(data))
}

func readValue(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		obj := Object{}
		// ReadObject 用空串同时表示对象结束和空键，两者无法区分；
		// 回调形式对每个成员各触发一次，空键成员也能完整保留。
		iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			obj = append(obj, Member{Name: field, Value: readValue(it)})
			return true
		})
		return obj
	case jsoniter.ArrayValue:
		arr := Array{}
		for iter.ReadArray() {
			arr = append(arr, readValue(iter))
		}
		return arr
	case jsoniter.StringValue:
		return String(iter.ReadString())
	case jsoniter.NumberValue:
		return Number(iter.ReadFloat64())
	case jsoniter.BoolValue:
		return Boolean(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		return Null{}
	default:
		iter.ReportError("readValue", "unexpected token")
		return Null{}
	}
}
