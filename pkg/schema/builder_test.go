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

package schema

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/lk2023060901/record-garden-go/pkg/util/merr"
)

type BuilderSuite struct {
	suite.Suite
}

func (s *BuilderSuite) build() *Registry {
	reg, err := NewBuilder("garden.test").
		AddEnum(Enum{
			Name: "Status",
			Values: []EnumValue{
				{Name: "PENDING", Number: 0},
				{Name: "ACTIVE", Number: 1},
				{Name: "DONE", Number: 2},
			},
		}).
		AddMessage(Message{
			Name: "Owner",
			Fields: []Field{
				{Name: "id", Kind: protoreflect.Int64Kind, Cardinality: Required},
				{Name: "email", Kind: protoreflect.StringKind},
			},
		}).
		AddMessage(Message{
			Name: "Task",
			Fields: []Field{
				{Name: "name", Kind: protoreflect.StringKind, Cardinality: Required},
				{Name: "weight", Kind: protoreflect.DoubleKind, Default: "1"},
				{Name: "status", Kind: protoreflect.EnumKind, TypeName: "Status"},
				{Name: "labels", Kind: protoreflect.StringKind, Cardinality: Repeated},
				{Name: "owner", Kind: protoreflect.MessageKind, TypeName: "Owner"},
			},
		}).
		Build()
	s.Require().NoError(err)
	return reg
}

func (s *BuilderSuite) TestDescriptorProperties() {
	reg := s.build()

	mt, err := reg.MessageType("Task")
	s.Require().NoError(err)

	fields := mt.Descriptor().Fields()
	s.Equal(5, fields.Len())

	name := fields.ByName("name")
	s.Require().NotNil(name)
	s.Equal(protoreflect.Required, name.Cardinality())
	s.Equal(protoreflect.StringKind, name.Kind())

	weight := fields.ByName("weight")
	s.Require().NotNil(weight)
	s.True(weight.HasDefault())
	s.Equal(1.0, weight.Default().Float())

	status := fields.ByName("status")
	s.Require().NotNil(status)
	s.Equal(protoreflect.EnumKind, status.Kind())
	s.NotNil(status.Enum().Values().ByName("ACTIVE"))

	labels := fields.ByName("labels")
	s.Require().NotNil(labels)
	s.True(labels.IsList())

	owner := fields.ByName("owner")
	s.Require().NotNil(owner)
	s.Equal(protoreflect.MessageKind, owner.Kind())
	s.Equal(protoreflect.Name("Owner"), owner.Message().Name())
}

func (s *BuilderSuite) TestDynamicMessageRoundTrip() {
	reg := s.build()

	msg, err := reg.New("Task")
	s.Require().NoError(err)

	m := msg.ProtoReflect()
	fields := m.Descriptor().Fields()
	m.Set(fields.ByName("name"), protoreflect.ValueOfString("ops"))

	// name 已设置，required 校验应当通过。
	s.NoError(proto.CheckInitialized(msg))

	data, err := proto.Marshal(msg)
	s.Require().NoError(err)

	decoded, err := reg.New("Task")
	s.Require().NoError(err)
	s.Require().NoError(proto.Unmarshal(data, decoded))
	s.True(proto.Equal(msg, decoded))
}

func (s *BuilderSuite) TestRequiredEnforced() {
	reg := s.build()

	msg, err := reg.New("Task")
	s.Require().NoError(err)
	s.Error(proto.CheckInitialized(msg))
}

func (s *BuilderSuite) TestBuildErrors() {
	_, err := NewBuilder("").Build()
	s.ErrorIs(err, merr.ErrParameterMissing)

	_, err = NewBuilder("garden.test").
		AddMessage(Message{Name: "M", Fields: []Field{{Name: "f", Kind: protoreflect.EnumKind}}}).
		Build()
	s.ErrorIs(err, merr.ErrParameterMissing)

	_, err = NewBuilder("garden.test").
		AddMessage(Message{Name: "M", Fields: []Field{{Name: "f", Kind: Kind(99)}}}).
		Build()
	s.ErrorIs(err, merr.ErrParameterInvalid)

	_, err = NewBuilder("garden.test").
		AddMessage(Message{Name: "M"}).
		AddMessage(Message{Name: "M"}).
		Build()
	s.ErrorIs(err, merr.ErrParameterInvalid)

	_, err = NewBuilder("garden.test").
		AddMessage(Message{Name: "M", Fields: []Field{
			{Name: "f", Kind: protoreflect.StringKind},
			{Name: "f", Kind: protoreflect.StringKind},
		}}).
		Build()
	s.ErrorIs(err, merr.ErrParameterInvalid)

	reg, err := NewBuilder("garden.test").Build()
	s.Require().NoError(err)
	_, err = reg.New("Missing")
	s.ErrorIs(err, merr.ErrParameterInvalid)
}

func TestBuilder(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}
