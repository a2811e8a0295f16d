// Command plasmerge-fixture runs the merge engine over a small in-memory
// fixture and prints the merged file, demonstrating the engine.MergeFiles
// entry point end to end without a real design-tool backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/plasmerge/plasmerge/internal/config"
	"github.com/plasmerge/plasmerge/internal/logging"
	"github.com/plasmerge/plasmerge/pkg/engine"
	"github.com/plasmerge/plasmerge/pkg/fixture"
)

func main() {
	configFile := flag.String("config", "", "path to a plasmerge config file")
	initConfig := flag.String("init-config", "", "write a default config file to this path and exit")
	flag.Parse()

	if *initConfig != "" {
		if err := config.Init(*initConfig, false); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	opts, err := config.NewLoader().Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.SetVerbose(opts.Verbose)

	rootUUID := uuid.New()
	nameToUUID := map[string]uuid.UUID{"Root": rootUUID}

	input := engine.ComponentInput{
		EditedFile:        editedFixture,
		NewFile:            newFixture,
		NewNameInIDToUUID: nameToUUID,
	}

	baseProvider := func(ctx context.Context, projectID string, revision int) (*engine.ProjectSyncMetadata, error) {
		return &engine.ProjectSyncMetadata{
			Components: []engine.ComponentSkeleton{
				{UUID: rootUUID, NameInIDToUUID: nameToUUID, FileContent: baseFixture},
			},
		}, nil
	}
	// A single run only ever fetches a (projectID, revision) once, but the
	// caching wrapper is what a long-lived process reuses across many
	// components that happen to share a base revision, and CacheDir lets
	// that memoization survive across separate process runs.
	cachingProvider := engine.NewCachingBaseProvider(baseProvider, opts.CacheDir)

	merged, err := engine.MergeFiles(context.Background(), map[uuid.UUID]engine.ComponentInput{rootUUID: input}, opts.ProjectID, engine.Options{
		Parser:       fixture.DOMParser{},
		BaseProvider: cachingProvider.Provide,
		Printer:      fixture.Printer{},
		StartMarker:  opts.ManagedStartMarker,
		EndMarker:    opts.ManagedEndMarker,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(merged[rootUUID])
}

const baseFixture = `<pm-file>
<pm-meta revision="1"></pm-meta>
<pm-imports></pm-imports>
<pm-managed>
<div data-id="Root" data-cls="1"></div>
</pm-managed>
</pm-file>`

const editedFixture = `<pm-file>
<pm-meta revision="1"></pm-meta>
<pm-imports></pm-imports>
<pm-managed>
<div data-id="Root" data-cls="1">Hello from a developer edit</div>
</pm-managed>
</pm-file>`

const newFixture = `<pm-file>
<pm-meta revision="2"></pm-meta>
<pm-imports></pm-imports>
<pm-managed>
<div data-id="Root" data-cls="1" data-show="1"></div>
</pm-managed>
</pm-file>`
