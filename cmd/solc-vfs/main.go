// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command solc-vfs is a thin driver over the path resolution core, useful
// for exercising the VFS, remapping engine, resolver, and loaders without a
// full parser and bytecode backend attached.
package main

import (
	"os"

	"github.com/solc-go/pathcore/cmd/solc-vfs/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
