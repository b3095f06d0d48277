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

// Package schema builds described-message types at runtime.
//
// A Builder assembles a proto2 file descriptor from declarative enum
// and message definitions (field name, cardinality, kind, declared
// default, nested message or enum reference) and materializes it into
// dynamic message types. The resulting types carry full reflection
// metadata, so they work with pkg/protodoc and pkg/recordio exactly
// like generated code does.
package schema

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/lk2023060901/record-garden-go/pkg/util/merr"
	"github.com/lk2023060901/record-garden-go/pkg/util/typeutil"
)

// Cardinality aliases protoreflect's field cardinality.
type Cardinality = protoreflect.Cardinality

const (
	Optional = protoreflect.Optional
	Required = protoreflect.Required
	Repeated = protoreflect.Repeated
)

// Kind aliases protoreflect's wire-type kind. The full proto2
// enumeration is usable, including the fixed/signed integer variants.
type Kind = protoreflect.Kind

// Field declares one field of a message.
type Field struct {
	// Name is the field name as it appears in documents.
	Name string
	// Number is the wire tag. Zero means "assign the next free one".
	Number int32
	// Kind is the wire type.
	Kind Kind
	// Cardinality defaults to Optional when left zero-valued.
	Cardinality Cardinality
	// Default is the declared default value in proto text form
	// (e.g. "1.5", "true", "ACTIVE"). Only meaningful for optional
	// scalar and enum fields.
	Default string
	// TypeName names the enum or message type of this field, for
	// Kind EnumKind/MessageKind. It refers to a sibling definition
	// registered on the same Builder.
	TypeName string
}

// EnumValue declares one value of an enum.
type EnumValue struct {
	Name   string
	Number int32
}

// Enum declares a closed enum type.
type Enum struct {
	Name   string
	Values []EnumValue
}

// Message declares a message type.
type Message struct {
	Name   string
	Fields []Field
}

// Builder accumulates definitions for a single synthetic proto2 file.
type Builder struct {
	pkg      string
	enums    []Enum
	messages []Message
}

// NewBuilder creates a Builder for the given protobuf package name.
func NewBuilder(pkg string) *Builder {
	return &Builder{pkg: pkg}
}

// AddEnum registers an enum definition.
func (b *Builder) AddEnum(e Enum) *Builder {
	b.enums = append(b.enums, e)
	return b
}

// AddMessage registers a message definition.
func (b *Builder) AddMessage(m Message) *Builder {
	b.messages = append(b.messages, m)
	return b
}

// Registry holds the materialized message types of one Build call.
type Registry struct {
	file  protoreflect.FileDescriptor
	types map[string]protoreflect.MessageType
}

// Build validates the accumulated definitions and materializes them.
func (b *Builder) Build() (*Registry, error) {
	if b.pkg == "" {
		return nil, merr.WrapErrParameterMissing("package name")
	}

	file := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(b.pkg + ".proto"),
		Package: proto.String(b.pkg),
		Syntax:  proto.String("proto2"),
	}

	typeNames := typeutil.NewSet[string]()
	for _, e := range b.enums {
		if !typeNames.TryInsert(e.Name) {
			return nil, merr.WrapErrParameterInvalidMsg("duplicate type name %q", e.Name)
		}
		ed := &descriptorpb.EnumDescriptorProto{
			Name: proto.String(e.Name),
		}
		for _, v := range e.Values {
			ed.Value = append(ed.Value, &descriptorpb.EnumValueDescriptorProto{
				Name:   proto.String(v.Name),
				Number: proto.Int32(v.Number),
			})
		}
		file.EnumType = append(file.EnumType, ed)
	}

	for _, m := range b.messages {
		if !typeNames.TryInsert(m.Name) {
			return nil, merr.WrapErrParameterInvalidMsg("duplicate type name %q", m.Name)
		}
		md := &descriptorpb.DescriptorProto{
			Name: proto.String(m.Name),
		}
		next := int32(1)
		fieldNames := typeutil.NewSet[string]()
		for _, f := range m.Fields {
			if !fieldNames.TryInsert(f.Name) {
				return nil, merr.WrapErrParameterInvalidMsg("duplicate field name %s.%s", m.Name, f.Name)
			}
			fd, err := b.fieldProto(m.Name, f, &next)
			if err != nil {
				return nil, err
			}
			md.Field = append(md.Field, fd)
		}
		file.MessageType = append(file.MessageType, md)
	}

	desc, err := protodesc.NewFile(file, nil)
	if err != nil {
		return nil, merr.WrapErrParameterInvalidMsg("invalid schema definition: %v", err)
	}

	reg := &Registry{
		file:  desc,
		types: make(map[string]protoreflect.MessageType, desc.Messages().Len()),
	}
	msgs := desc.Messages()
	for i := 0; i < msgs.Len(); i++ {
		md := msgs.Get(i)
		reg.types[string(md.Name())] = dynamicpb.NewMessageType(md)
	}
	return reg, nil
}

func (b *Builder) fieldProto(message string, f Field, next *int32) (*descriptorpb.FieldDescriptorProto, error) {
	if f.Name == "" {
		return nil, merr.WrapErrParameterMissing("field name", "message "+message)
	}
	if f.Kind < protoreflect.DoubleKind || f.Kind > protoreflect.Sint64Kind {
		return nil, merr.WrapErrParameterInvalidMsg("unknown field kind %d for %s.%s", f.Kind, message, f.Name)
	}

	number := f.Number
	if number == 0 {
		number = *next
	}
	if number >= *next {
		*next = number + 1
	}

	cardinality := f.Cardinality
	if cardinality == 0 {
		cardinality = Optional
	}

	fd := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(f.Name),
		Number: proto.Int32(number),
		// protoreflect.Kind values are identical to the descriptor
		// type enumeration, so the cast is exact.
		Type:  descriptorpb.FieldDescriptorProto_Type(f.Kind).Enum(),
		Label: descriptorpb.FieldDescriptorProto_Label(cardinality).Enum(),
	}
	if f.Default != "" {
		fd.DefaultValue = proto.String(f.Default)
	}

	switch f.Kind {
	case protoreflect.EnumKind, protoreflect.MessageKind, protoreflect.GroupKind:
		if f.TypeName == "" {
			return nil, merr.WrapErrParameterMissing("type name", "field "+message+"."+f.Name)
		}
		fd.TypeName = proto.String("." + b.pkg + "." + f.TypeName)
	}

	return fd, nil
}

// MessageType returns the dynamic type for the named message.
func (r *Registry) MessageType(name string) (protoreflect.MessageType, error) {
	mt, ok := r.types[name]
	if !ok {
		return nil, merr.WrapErrParameterInvalidMsg("message type %q not defined", name)
	}
	return mt, nil
}

// New returns a fresh, empty instance of the named message.
func (r *Registry) New(name string) (proto.Message, error) {
	mt, err := r.MessageType(name)
	if err != nil {
		return nil, err
	}
	return mt.New().Interface(), nil
}

// File exposes the underlying file descriptor.
func (r *Registry) File() protoreflect.FileDescriptor {
	return r.file
}
