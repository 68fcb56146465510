// Copyright 2026 the original author or authors.
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

// Package cli holds the root command and the flag helpers shared by the
// georender subcommands.
package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd is the georender command; subcommands register themselves on it.
var RootCmd = &cobra.Command{
	Use:   "georender",
	Short: "Convert OpenStreetMap data into georender feature streams",
	Long: "Convert OpenStreetMap PBF extracts into compressed streams of triangulated, " +
		"render-ready point, line and area features, and inspect the result.",
	SilenceUsage: true,
}
