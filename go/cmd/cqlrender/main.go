/*
Copyright 2025 The Multigres Authors.

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

// cqlrender prints the canonical CQL text of ALTER TABLE, CREATE INDEX and
// INSERT statements described in YAML or JSON documents.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/multigres/cql3/go/cmd/cqlrender/command"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root, _ := command.GetRootCommand(afero.NewOsFs())
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("Command execution failed", "error", err)
		cancel()
		os.Exit(1)
	}
}
