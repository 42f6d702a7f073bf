// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"context"
	"io"
)

// NewFunc returns a Publisher that opens objects with create.
func NewFunc(prefix, root string, create func(ctx context.Context, name string) (io.WriteCloser, error)) *Publisher {
	return &Publisher{prefix: prefix, root: root, create: create}
}
