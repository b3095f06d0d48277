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

// Package protodoc converts between protobuf messages and the
// document value model, driven entirely by message reflection.
//
// The two directions are independent: FromMessage walks a message's
// schema to produce a document object, ParseInto walks a document
// object against a target message's schema to populate it. Neither
// retains the message beyond the call, and both are safe to use
// concurrently on independent messages.
package protodoc

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/lk2023060901/record-garden-go/pkg/document"
)

// FromMessage converts a message into a document object.
//
// A repeated field is present iff it has at least one element. A
// singular field is present iff it is set or declares a default value;
// in the latter case the declared default is materialized. Absent
// optional fields are omitted entirely, never emitted as null. Enum
// values surface as their declared names, bytes as plain strings, and
// every integer kind as a double-precision number.
func FromMessage(msg proto.Message) document.Object {
	return messageToObject(msg.ProtoReflect())
}

func messageToObject(m protoreflect.Message) document.Object {
	fields := m.Descriptor().Fields()
	obj := document.Object{}

	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		switch {
		case fd.IsMap():
			// Map fields do not exist in the proto2 record schemas
			// this codec serves; a map here means the schema and the
			// codec disagree about the kind enumeration.
			panic(fmt.Sprintf("unhandled protobuf field kind: map<%v, %v>", fd.MapKey().Kind(), fd.MapValue().Kind()))
		case fd.IsList():
			list := m.Get(fd).List()
			if list.Len() == 0 {
				continue
			}
			arr := make(document.Array, 0, list.Len())
			for j := 0; j < list.Len(); j++ {
				arr = append(arr, scalarToValue(fd, list.Get(j)))
			}
			obj.Set(string(fd.Name()), arr)
		default:
			if !m.Has(fd) && !fd.HasDefault() {
				continue
			}
			obj.Set(string(fd.Name()), scalarToValue(fd, m.Get(fd)))
		}
	}
	return obj
}

func scalarToValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) document.Value {
	switch fd.Kind() {
	case protoreflect.DoubleKind, protoreflect.FloatKind:
		return document.Number(v.Float())
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return document.Number(float64(v.Int()))
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return document.Number(float64(v.Uint()))
	case protoreflect.BoolKind:
		return document.Boolean(v.Bool())
	case protoreflect.StringKind:
		return document.String(v.String())
	case protoreflect.BytesKind:
		return document.String(v.Bytes())
	case protoreflect.EnumKind:
		ev := fd.Enum().Values().ByNumber(v.Enum())
		if ev == nil {
			panic(fmt.Sprintf("enum value %d not declared by %s", v.Enum(), fd.Enum().FullName()))
		}
		return document.String(ev.Name())
	case protoreflect.MessageKind:
		return messageToObject(v.Message())
	default:
		// GroupKind is deprecated and never produced by this
		// library's schemas. Not a runtime/data condition: the
		// descriptor is inconsistent with the kind enumeration.
		panic(fmt.Sprintf("unhandled protobuf field kind: %v", fd.Kind()))
	}
}
