package main

import (
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/carbocation/bellybutton/panel"
)

// RandHeteroglyphs produces a string of n symbols which do
// not look like one another. (Derived to be the opposite of
// homoglyphs, which are symbols which look similar to one
// another and cannot be quickly distinguished.)
func RandHeteroglyphs(n int) string {
	var letters = []rune("abcdefghkmnpqrstwxyz")
	lenLetters := len(letters)
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(lenLetters)]
	}
	return string(b)
}

// GetIPAddress returns a user's IP address, even if your Go app is sitting behind
// a reverse proxy.
func GetIPAddress(r *http.Request) string {
	hdr := r.Header
	hdrRealIp := hdr.Get("X-Real-Ip")
	hdrForwardedFor := hdr.Get("X-Forwarded-For")
	if hdrRealIp == "" && hdrForwardedFor == "" {
		hostWithoutPort, _, _ := net.SplitHostPort(r.RemoteAddr)
		return hostWithoutPort
	}
	if hdrForwardedFor != "" {
		// X-Forwarded-For is potentially a list of addresses separated with ","
		parts := strings.Split(hdrForwardedFor, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		return parts[0]
	}
	return hdrRealIp
}

// parseZoom reads the xmin and xmax query parameters. Both or neither must be
// given, and xmax must exceed xmin.
func parseZoom(r *http.Request) (panel.Zoom, error) {
	q := r.URL.Query()
	xmin, xmax := q.Get("xmin"), q.Get("xmax")
	if xmin == "" && xmax == "" {
		return panel.Zoom{}, nil
	}
	if xmin == "" || xmax == "" {
		return panel.Zoom{}, fmt.Errorf("xmin and xmax must be given together")
	}

	lo, err := strconv.ParseFloat(xmin, 64)
	if err != nil {
		return panel.Zoom{}, fmt.Errorf("xmin: %w", err)
	}
	hi, err := strconv.ParseFloat(xmax, 64)
	if err != nil {
		return panel.Zoom{}, fmt.Errorf("xmax: %w", err)
	}
	if !(hi > lo) {
		return panel.Zoom{}, fmt.Errorf("xmax (%v) must be greater than xmin (%v)", hi, lo)
	}

	return panel.Zoom{XMin: lo, XMax: hi}, nil
}

// queryInt reads an optional integer query parameter. Missing means 0.
func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}

	return n, nil
}
