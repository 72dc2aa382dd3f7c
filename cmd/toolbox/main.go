// Command toolbox calls the toolbox API from the terminal, one subcommand
// per endpoint.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akamensky/argparse"

	"github.com/playperu/apitoolbox/internal/apiclient"
	"github.com/playperu/apitoolbox/internal/catalog"
	"github.com/playperu/apitoolbox/internal/toolbox"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args, os.Getenv, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout io.Writer) error {
	cat := catalog.Default()

	baseURL := getenv("TOOLBOX_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	parser := argparse.NewParser("toolbox", "Dictionary, prayer times, Qibla, riddles, games and QR codes")
	apiURL := parser.String("u", "url", &argparse.Options{Default: baseURL, Help: "Toolbox API base URL"})
	timeout := parser.String("t", "timeout", &argparse.Options{Default: "30s", Help: "Per-call timeout, e.g. 10s"})

	defineCmd := parser.NewCommand("define", "Look up an English word")
	defineWord := defineCmd.String("w", "word", &argparse.Options{Required: true, Help: "Word to define"})

	translateCmd := parser.NewCommand("translate", "Mock-translate a word")
	translateWord := translateCmd.String("w", "word", &argparse.Options{Required: true, Help: "Word to translate"})
	translateLang := translateCmd.Selector("l", "lang", languageCodes(cat), &argparse.Options{Required: true, Help: "Target language code"})

	prayerCmd := parser.NewCommand("prayer-times", "Today's prayer times for a city")
	prayerCity := prayerCmd.String("c", "city", &argparse.Options{Required: true, Help: "City name"})
	prayerCountry := prayerCmd.String("n", "country", &argparse.Options{Required: true, Help: "Country name"})

	qiblaCmd := parser.NewCommand("qibla", "Qibla direction for a coordinate pair")
	qiblaLat := qiblaCmd.Float("a", "lat", &argparse.Options{Required: true, Help: "Latitude"})
	qiblaLng := qiblaCmd.Float("o", "lng", &argparse.Options{Required: true, Help: "Longitude"})

	riddleCmd := parser.NewCommand("riddle", "A random riddle")

	gamesCmd := parser.NewCommand("games", "Free-to-play games")
	gamesPlatform := gamesCmd.Selector("p", "platform", optionValues(cat.Platforms), &argparse.Options{Help: "Platform filter"})
	gamesCategory := gamesCmd.Selector("c", "category", optionValues(cat.Categories), &argparse.Options{Help: "Category filter"})
	gamesSort := gamesCmd.Selector("s", "sort-by", optionValues(cat.SortOptions), &argparse.Options{Help: "Sort order"})

	qrCmd := parser.NewCommand("qr", "Print the image URL of a QR code")
	qrData := qrCmd.String("d", "data", &argparse.Options{Required: true, Help: "Text or URL to encode"})

	if err := parser.Parse(args); err != nil {
		return errors.New(parser.Usage(err))
	}

	callTimeout, err := time.ParseDuration(*timeout)
	if err != nil {
		return fmt.Errorf("parsing --timeout: %w", err)
	}

	opts := []apiclient.Option{apiclient.WithHTTPClient(&http.Client{Timeout: callTimeout})}
	if qrURL := getenv("QR_API_URL"); qrURL != "" {
		opts = append(opts, apiclient.WithQRCodeURL(qrURL))
	}
	c := apiclient.New(*apiURL, opts...)

	var out any
	switch {
	case defineCmd.Happened():
		out, err = c.FetchDefinition(ctx, *defineWord)
	case translateCmd.Happened():
		out, err = c.FetchTranslation(ctx, *translateWord, *translateLang)
	case prayerCmd.Happened():
		out, err = c.FetchPrayerTimes(ctx, *prayerCity, *prayerCountry)
	case qiblaCmd.Happened():
		out, err = c.FetchQiblaDirection(ctx, *qiblaLat, *qiblaLng)
	case riddleCmd.Happened():
		out, err = c.FetchRiddle(ctx)
	case gamesCmd.Happened():
		out, err = c.FetchFreeToPlayGames(ctx, toolbox.GameFilter{
			Platform: unlessAll(*gamesPlatform),
			Category: unlessAll(*gamesCategory),
			SortBy:   *gamesSort,
		})
	case qrCmd.Happened():
		u, err := c.QRCodeURL(*qrData)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, u)
		return err
	default:
		return errors.New(parser.Usage(nil))
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func languageCodes(cat *catalog.Catalog) []string {
	codes := make([]string, 0, len(cat.Languages))
	for _, l := range cat.Languages {
		codes = append(codes, l.Code)
	}
	return codes
}

func optionValues(opts []catalog.Option) []string {
	values := make([]string, 0, len(opts))
	for _, o := range opts {
		values = append(values, o.Value)
	}
	return values
}

// unlessAll maps the "all" choice to no filter.
func unlessAll(v string) string {
	if v == "all" {
		return ""
	}
	return v
}
