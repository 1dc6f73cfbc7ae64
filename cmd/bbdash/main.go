package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"runtime"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	_ "github.com/carbocation/bellybutton/compileinfoprint"
	"github.com/carbocation/bellybutton/projector"
)

var global *Global

func init() {
	// Prevent seed re-use
	rand.Seed(int64(time.Now().Nanosecond()))
}

func main() {
	errors := make(chan error, 1)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig,
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGHUP,
		syscall.SIGUSR1,
	)

	var configPath string
	cfg := settings{
		Options: projector.DefaultOptions(),
		Site:    "Belly Button Biodiversity",
		Company: "Belly Button Biodiversity",
	}

	flag.StringVar(&configPath, "config", "", "(Optional) JSON file with any of the settings below. Flags given on the command line take precedence.")
	flag.StringVar(&cfg.Source.Primary, "data", "", "Path to the samples JSON document. May be a local file, a gs:// object or an http(s) URL, optionally compressed.")
	flag.StringVar(&cfg.Source.Fallback, "fallback", "", "(Optional) Second location of the samples document, read only if --data cannot be loaded.")
	flag.StringVar(&cfg.Source.MetadataTable, "metadata", "", "(Optional) Delimited table with an 'id' column whose rows are merged over the document's metadata.")
	flag.IntVar(&cfg.Port, "port", 9019, "Port for HTTP server")
	flag.IntVar(&cfg.Options.Top, "top", cfg.Options.Top, "Number of taxa shown in the bar chart")
	flag.Float64Var(&cfg.Options.ZoomMinFactor, "zoom-min", cfg.Options.ZoomMinFactor, "Smallest marker scale factor when zooming the bubble chart")
	flag.Float64Var(&cfg.Options.ZoomMaxFactor, "zoom-max", cfg.Options.ZoomMaxFactor, "Largest marker scale factor when zooming the bubble chart")
	flag.Float64Var(&cfg.Options.BubbleSizeDenominator, "bubble-denominator", cfg.Options.BubbleSizeDenominator, "The largest sample value maps to a bubble of sqrt(bubble-denominator) pixels")
	flag.Float64Var(&cfg.Options.ReferenceWidth, "reference-width", cfg.Options.ReferenceWidth, "(Optional) Zoom reference width in OTU ids. If 0, the subject's own OTU id extent is used.")
	flag.Float64Var(&cfg.Options.GaugeMax, "gauge-max", cfg.Options.GaugeMax, "Upper end of the washing frequency gauge")
	flag.StringVar(&cfg.TemplateDir, "templates", "", "(Optional) Folder with HTML templates to use instead of the built-in ones.")
	flag.Parse()

	if configPath != "" {
		fileConfig, err := ParseJSONConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
		fileConfig.Apply(&cfg, explicitFlags(flag.CommandLine))
	}

	if cfg.Source.Primary == "" {
		flag.PrintDefaults()
		return
	}

	var sclient *storage.Client
	var err error

	if strings.HasPrefix(cfg.Source.Primary, "gs://") ||
		strings.HasPrefix(cfg.Source.Fallback, "gs://") ||
		strings.HasPrefix(cfg.Source.MetadataTable, "gs://") {
		sclient, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	port := cfg.Port
	global = &Global{
		Site:          cfg.Site,
		Company:       cfg.Company,
		Email:         cfg.Email,
		SnailMail:     cfg.SnailMail,
		log:           log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime),
		storageClient: sclient,

		Source:      cfg.Source,
		Options:     cfg.Options,
		TemplateDir: cfg.TemplateDir,
	}

	global.log.Println("Launching", global.Site)

	if err := global.Reload(ctx); err != nil {
		log.Fatalln(err)
	}
	global.StartReloader(ctx)

	whoami, err := user.Current()
	if err != nil {
		log.Fatalln(err)
	}
	hostname, err := os.Hostname()
	if err != nil {
		log.Fatalln(err)
	}

	global.log.Println("Locally, you should now run:")
	global.log.Printf("gcloud compute ssh %s@%s -- -NnT -L %d:localhost:%d\n", whoami.Username, hostname, port, port)

	routes, err := router(global)
	if err != nil {
		log.Fatalln(err)
	}

	go func() {
		global.log.Println("Starting HTTP server on port", port)
		if err := http.ListenAndServe(fmt.Sprintf(`:%d`, port), routes); err != nil {
			errors <- err
			global.log.Println(err)
			sig <- syscall.SIGTERM
			return
		}
	}()

Outer:
	for {
		select {
		case sigl := <-sig:

			if sigl == syscall.SIGUSR1 {
				SigStatus()
				continue
			}

			if sigl == syscall.SIGHUP {
				global.log.Println("Reload requested:", global.RequestReload())
				continue
			}

			// By default, exit
			global.log.Printf("\nExit: %s\n", sigl.String())

			break Outer

		case err := <-errors:
			if err == nil {
				global.log.Println("Finished")
				break Outer
			}

			// Return a status code indicating failure
			global.log.Println("Exiting due to error", err)
			os.Exit(1)
		}
	}
}

func SigStatus() {
	global.log.Println("There are", runtime.NumGoroutine(), "goroutines running")
	global.log.Println("There are", len(global.Dataset().Subjects()), "subjects loaded and", global.Charts().Len(), "charts cached")
}
