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

package protodoc

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/lk2023060901/record-garden-go/pkg/document"
	"github.com/lk2023060901/record-garden-go/pkg/util/merr"
)

// ParseInto populates msg from a document value, which must be an
// object.
//
// Object members are matched to fields by name; members without a
// matching field are silently skipped. Application is fail-fast:
// fields applied before the first error stay applied. After all
// members are applied the message's required fields are verified, so
// a nil return implies a fully initialized message.
func ParseInto(v document.Value, msg proto.Message) error {
	obj, ok := v.(document.Object)
	if !ok {
		return merr.WrapErrDocumentNotObject(v.Kind())
	}

	if err := parseObject(msg.ProtoReflect(), obj); err != nil {
		return err
	}

	if err := proto.CheckInitialized(msg); err != nil {
		return merr.WrapErrRecordNotInitialized(err)
	}
	return nil
}

// ParseNew is ParseInto on a fresh instance of the given type.
func ParseNew(v document.Value, mt protoreflect.MessageType) (proto.Message, error) {
	msg := mt.New().Interface()
	if err := ParseInto(v, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func parseObject(m protoreflect.Message, obj document.Object) error {
	fields := m.Descriptor().Fields()
	for i := range obj {
		fd := fields.ByName(protoreflect.Name(obj[i].Name))
		if fd == nil {
			// Unknown keys are tolerated so documents produced by a
			// newer schema still parse.
			continue
		}
		if err := applyValue(m, fd, obj[i].Value); err != nil {
			return err
		}
	}
	return nil
}

// applyValue dispatches on the document value's dynamic kind combined
// with the field's kind and cardinality. A bare scalar against a
// repeated field appends a single element; an array applies each
// element independently against the same field.
func applyValue(m protoreflect.Message, fd protoreflect.FieldDescriptor, v document.Value) error {
	name := string(fd.Name())

	switch v := v.(type) {
	case document.Object:
		if fd.Kind() != protoreflect.MessageKind {
			return merr.WrapErrFieldTypeMismatch(name, v.Kind())
		}
		if fd.IsList() {
			elem := m.Mutable(fd).List().AppendMutable()
			return parseObject(elem.Message(), v)
		}
		return parseObject(m.Mutable(fd).Message(), v)

	case document.Array:
		if !fd.IsList() {
			return merr.WrapErrFieldTypeMismatch(name, v.Kind())
		}
		for i := range v {
			if err := applyValue(m, fd, v[i]); err != nil {
				return err
			}
		}
		return nil

	case document.String:
		switch fd.Kind() {
		case protoreflect.StringKind:
			assign(m, fd, protoreflect.ValueOfString(string(v)))
		case protoreflect.BytesKind:
			assign(m, fd, protoreflect.ValueOfBytes([]byte(v)))
		case protoreflect.EnumKind:
			ev := fd.Enum().Values().ByName(protoreflect.Name(string(v)))
			if ev == nil {
				return merr.WrapErrEnumValueNotFound(name, string(v))
			}
			assign(m, fd, protoreflect.ValueOfEnum(ev.Number()))
		default:
			return merr.WrapErrFieldTypeMismatch(name, v.Kind())
		}
		return nil

	case document.Number:
		// Narrowing follows the native conversion for the target
		// width; no additional range check is applied.
		switch fd.Kind() {
		case protoreflect.DoubleKind:
			assign(m, fd, protoreflect.ValueOfFloat64(float64(v)))
		case protoreflect.FloatKind:
			assign(m, fd, protoreflect.ValueOfFloat32(float32(v)))
		case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
			assign(m, fd, protoreflect.ValueOfInt64(int64(v)))
		case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
			assign(m, fd, protoreflect.ValueOfUint64(uint64(v)))
		case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
			assign(m, fd, protoreflect.ValueOfInt32(int32(v)))
		case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
			assign(m, fd, protoreflect.ValueOfUint32(uint32(v)))
		default:
			return merr.WrapErrFieldTypeMismatch(name, v.Kind())
		}
		return nil

	case document.Boolean:
		if fd.Kind() != protoreflect.BoolKind {
			return merr.WrapErrFieldTypeMismatch(name, v.Kind())
		}
		assign(m, fd, protoreflect.ValueOfBool(bool(v)))
		return nil

	case document.Null:
		return merr.WrapErrFieldNullValue(name)

	default:
		return merr.WrapErrFieldTypeMismatch(name, v.Kind())
	}
}

func assign(m protoreflect.Message, fd protoreflect.FieldDescriptor, v protoreflect.Value) {
	if fd.IsList() {
		m.Mutable(fd).List().Append(v)
	} else {
		m.Set(fd, v)
	}
}
