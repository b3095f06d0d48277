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

// Package document provides the dynamically-typed value model used as
// the text-oriented representation of described messages: an ordered
// object, an array, and the string/number/boolean/null leaves, plus an
// order-preserving JSON text form.
package document

// Value is one of Object, Array, String, Number, Boolean or Null.
type Value interface {
	// Kind returns the lowercase name of the dynamic kind, used in
	// type-mismatch diagnostics.
	Kind() string

	isValue()
}

var (
	_ Value = Object(nil)
	_ Value = Array(nil)
	_ Value = String("")
	_ Value = Number(0)
	_ Value = Boolean(false)
	_ Value = Null{}
)

// Member is a single named entry of an Object.
type Member struct {
	Name  string
	Value Value
}

// Object is an ordered mapping from member name to Value. Names are
// unique; Set replaces in place so member order is stable under
// updates.
type Object []Member

func (Object) Kind() string { return "object" }
func (Object) isValue()     {}

// Get returns the value of the named member.
func (o Object) Get(name string) (Value, bool) {
	for i := range o {
		if o[i].Name == name {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Set replaces the named member's value, or appends a new member.
func (o *Object) Set(name string, v Value) {
	for i := range *o {
		if (*o)[i].Name == name {
			(*o)[i].Value = v
			return
		}
	}
	*o = append(*o, Member{Name: name, Value: v})
}

// Array is an ordered sequence of values. Homogeneity is not enforced
// by the model.
type Array []Value

func (Array) Kind() string { return "array" }
func (Array) isValue()     {}

// String is a string leaf. Byte-typed message fields also surface as
// String, without additional encoding.
type String string

func (String) Kind() string { return "string" }
func (String) isValue()     {}

// Number is a double-precision number leaf. All integer field kinds
// pass through Number, which is lossy above 2^53; this matches the
// on-the-wire document format this model is compatible with.
type Number float64

func (Number) Kind() string { return "number" }
func (Number) isValue()     {}

// Boolean is a boolean leaf.
type Boolean bool

func (Boolean) Kind() string { return "boolean" }
func (Boolean) isValue()     {}

// Null is the null leaf.
type Null struct{}

func (Null) Kind() string { return "null" }
func (Null) isValue()     {}
