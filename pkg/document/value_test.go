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
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValueSuite struct {
	suite.Suite
}

func (s *ValueSuite) TestObjectSetPreservesOrder() {
	obj := Object{}
	obj.Set("b", Number(1))
	obj.Set("a", String("x"))
	obj.Set("c", Boolean(true))

	// 覆盖已存在的成员不应该改变位置。
	obj.Set("a", String("y"))

	s.Require().Len(obj, 3)
	s.Equal("b", obj[0].Name)
	s.Equal("a", obj[1].Name)
	s.Equal("c", obj[2].Name)

	v, ok := obj.Get("a")
	s.True(ok)
	s.Equal(String("y"), v)

	_, ok = obj.Get("missing")
	s.False(ok)
}

func (s *ValueSuite) TestKinds() {
	cases := []struct {
		value Value
		kind  string
	}{
		{Object{}, "object"},
		{Array{}, "array"},
		{String(""), "string"},
		{Number(0), "number"},
		{Boolean(false), "boolean"},
		{Null{}, "null"},
	}
	for _, tc := range cases {
		s.Equal(tc.kind, tc.value.Kind())
	}
}

func TestValue(t *testing.T) {
	suite.Run(t, new(ValueSuite))
}
