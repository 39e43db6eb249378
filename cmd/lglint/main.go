package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"github.com/lifei6671/lg"
	"github.com/lifei6671/lg/cmd/lglint/checker"
)

func main() {
	dir := pflag.StringP("dir", "d", "./resources", "directory of .lg resource files")
	exts := pflag.StringSliceP("ext", "e", lg.DefaultExtensions, "resource file extensions")
	failOnError := pflag.Bool("fail", false, "exit with code 1 if any issue found")
	logLevel := pflag.String("log-level", "", "log level (debug, info, warn, error)")
	pflag.Parse()

	logger, err := lg.NewLogger(*logLevel)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	res, err := checker.CheckResources(lg.NewFileSystemProvider(*dir, *exts...), lg.WithLogger(logger))
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	printResult(res)

	if *failOnError && res.HasIssues() {
		os.Exit(1)
	}
}

func printResult(res *checker.Result) {
	fmt.Println("=== LG CHECK RESULT ===")
	fmt.Println("Locales:", res.Locales)
	fmt.Println("Total resources:", len(res.Resources))

	for _, id := range res.Resources {
		fmt.Printf("\n--- [%s] ---\n", id)

		if err, ok := res.ParseErrors[id]; ok {
			fmt.Println("Parse error:", err)
			continue
		}
		printList("Unresolved imports", res.UnresolvedImports[id])
		printList("Missing templates", res.MissingTemplates[id])
		printList("Redundant templates", res.RedundantTemplates[id])
	}
}

func printList(title string, items []string) {
	if len(items) == 0 {
		fmt.Printf("%s: None\n", title)
		return
	}
	sort.Strings(items)
	fmt.Printf("%s:\n", title)
	for _, item := range items {
		fmt.Println("  -", item)
	}
}
