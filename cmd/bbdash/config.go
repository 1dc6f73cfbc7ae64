package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/carbocation/bellybutton"
	"github.com/carbocation/bellybutton/dataset"
	"github.com/carbocation/bellybutton/projector"
	"github.com/carbocation/pfx"
)

// JSONConfig is the optional --config file. Any flag given on the command
// line takes precedence over the same setting in the file.
type JSONConfig struct {
	ConfigPath string `json:"-"`

	Data      string `json:"data"`
	Fallback  string `json:"fallback"`
	Metadata  string `json:"metadata"`
	Port      int    `json:"port"`
	Templates string `json:"templates"`

	Site      string `json:"site"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	SnailMail string `json:"snail_mail"`

	Top                   *int     `json:"top"`
	ZoomMin               *float64 `json:"zoom_min"`
	ZoomMax               *float64 `json:"zoom_max"`
	BubbleSizeDenominator *float64 `json:"bubble_denominator"`
	ReferenceWidth        *float64 `json:"reference_width"`
	GaugeMax              *float64 `json:"gauge_max"`
}

func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	path = bellybutton.ExpandHome(path)
	out := JSONConfig{ConfigPath: path}

	f, err := os.Open(path)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}

		return out, pfx.Err(err)
	}

	// Interpret ~ if present
	out.Data = bellybutton.ExpandHome(out.Data)
	out.Fallback = bellybutton.ExpandHome(out.Fallback)
	out.Metadata = bellybutton.ExpandHome(out.Metadata)
	out.Templates = bellybutton.ExpandHome(out.Templates)

	return out, nil
}

// settings collects everything main needs to start the server.
type settings struct {
	Source      dataset.Source
	Options     projector.Options
	Port        int
	TemplateDir string

	Site      string
	Company   string
	Email     string
	SnailMail string
}

// Apply copies the file's values into s, skipping any setting whose flag
// was given explicitly.
func (c JSONConfig) Apply(s *settings, explicit map[string]bool) {
	str := func(flagName string, dst *string, v string) {
		if v != "" && !explicit[flagName] {
			*dst = v
		}
	}
	num := func(flagName string, dst *float64, v *float64) {
		if v != nil && !explicit[flagName] {
			*dst = *v
		}
	}

	str("data", &s.Source.Primary, c.Data)
	str("fallback", &s.Source.Fallback, c.Fallback)
	str("metadata", &s.Source.MetadataTable, c.Metadata)
	str("templates", &s.TemplateDir, c.Templates)

	if c.Port != 0 && !explicit["port"] {
		s.Port = c.Port
	}
	if c.Top != nil && !explicit["top"] {
		s.Options.Top = *c.Top
	}
	num("zoom-min", &s.Options.ZoomMinFactor, c.ZoomMin)
	num("zoom-max", &s.Options.ZoomMaxFactor, c.ZoomMax)
	num("bubble-denominator", &s.Options.BubbleSizeDenominator, c.BubbleSizeDenominator)
	num("reference-width", &s.Options.ReferenceWidth, c.ReferenceWidth)
	num("gauge-max", &s.Options.GaugeMax, c.GaugeMax)

	// Page decoration has no flags
	str("", &s.Site, c.Site)
	str("", &s.Company, c.Company)
	str("", &s.Email, c.Email)
	str("", &s.SnailMail, c.SnailMail)
}

// explicitFlags names the flags that were set on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	out := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		out[f.Name] = true
	})

	return out
}
