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

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinderFallsBackToGlobal(t *testing.T) {
	var b Binder
	lg := b.Logger()
	require.NotNil(t, lg)
	assert.Equal(t, L(), lg.Logger)
}

func TestBinderKeepsBoundLogger(t *testing.T) {
	var b Binder
	bound := With(FieldComponent("binder-test"))
	b.SetLogger(bound)
	assert.Same(t, bound, b.Logger())
}
