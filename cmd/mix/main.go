// Command mix composes drinks from the command line without a server or a database.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"pop-lab/catalog"
	"pop-lab/domain"
	"pop-lab/extraction"
	"pop-lab/recommender"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	prefs := flag.String("prefs", "", "Comma separated preferences, e.g. mango,coke,whip")
	text := flag.String("text", "", "Free text to extract preferences from")
	catalogPath := flag.String("catalog", "", "Catalog YAML file (bundled catalog when empty)")
	seed := flag.Uint64("seed", 0, "Random seed (time based when 0)")
	n := flag.Int("n", 1, "Number of drinks to compose")
	colored := flag.Bool("color", true, "Colored header")
	verbose := flag.Bool("v", false, "Debug logs on stderr")
	flag.Parse()

	if err := mix(os.Stdout, options{
		prefs:       *prefs,
		text:        *text,
		catalogPath: *catalogPath,
		seed:        *seed,
		n:           *n,
		colored:     *colored,
		verbose:     *verbose,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "mix: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	prefs       string
	text        string
	catalogPath string
	seed        uint64
	n           int
	colored     bool
	verbose     bool
}

func mix(w io.Writer, opts options) error {
	if opts.n < 1 {
		return fmt.Errorf("-n must be at least 1, got %d", opts.n)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.verbose {
		log = logs.GetLoggerFromLevel(slog.LevelDebug)
	}

	menu, err := catalog.LoadDefault()
	if opts.catalogPath != "" {
		menu, err = catalog.LoadFile(opts.catalogPath)
	}
	if err != nil {
		return err
	}

	tokens := splitPreferences(opts.prefs)
	if opts.text != "" {
		var names []string
		for _, category := range domain.Categories {
			names = append(names, menu.Names(category)...)
		}
		extractor, err := extraction.NewExtractor(append(names, recommender.DietToken))
		if err != nil {
			return err
		}
		tokens = append(tokens, extractor.Extract(opts.text)...)
	}
	if len(tokens) == 0 {
		return fmt.Errorf("nothing to mix: give -prefs or -text")
	}

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	composer, err := recommender.NewComposer(menu, recommender.NewSeededSource(seed), log)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("Mixing %s (seed %d)", strings.Join(tokens, ", "), seed)
	if opts.colored {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Fprintln(w, header)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Syrups", "Soda", "Add-ins"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for i := range opts.n {
		composition, err := composer.Compose(tokens)
		if err != nil {
			return err
		}
		table.Append(row(i+1, composition))
	}
	table.Render()
	return nil
}

func splitPreferences(s string) []string {
	var tokens []string
	for _, token := range strings.Split(s, ",") {
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func row(i int, c domain.Composition) []string {
	if c.IsEmpty() {
		return []string{fmt.Sprint(i), "-", "-", "-"}
	}
	return []string{
		fmt.Sprint(i),
		strings.Join(c.Syrups, " + "),
		strings.Join(c.Soda, ""),
		strings.Join(c.AddIns, ", "),
	}
}
