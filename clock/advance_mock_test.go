/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package clock

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAdvanceReadsSourceOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	src := NewMockTickSource(ctrl)
	out := &bytes.Buffer{}

	gomock.InOrder(
		// construction
		src.EXPECT().Millis().Return(uint32(100)),
		// not due yet
		src.EXPECT().Millis().Return(uint32(1100)),
		// due, one second applied
		src.EXPECT().Millis().Return(uint32(3500)),
		// still due, one more second
		src.EXPECT().Millis().Return(uint32(3500)),
		// mark is at 2100 now
		src.EXPECT().Millis().Return(uint32(3100)),
	)

	c := New(src, out, Config{})
	require.False(t, c.Advance())
	require.True(t, c.Advance())
	require.True(t, c.Advance())
	require.False(t, c.Advance())
	require.Equal(t, uint32(2100), c.Mark())
	require.Equal(t, "Monday, 0:0:1\nMonday, 0:0:2\n", out.String())
}
