package compileinfo

import (
	"bytes"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	cases := []struct {
		info CompileInfo
		want string
	}{
		{CompileInfo{}, "no build information"},
		{CompileInfo{Package: "bbdash", GoVersion: "go1.18", Commit: "abc", CommitTime: "t"}, "built with go1.18 at commit abc"},
		{CompileInfo{Package: "bbdash", Modified: true}, "at commit (unknown)"},
		{CompileInfo{Package: "bbdash", Modified: true}, "modified after that commit"},
	}

	for _, c := range cases {
		if got := c.info.String(); !strings.Contains(got, c.want) {
			t.Errorf("%+v: %q does not contain %q", c.info, got, c.want)
		}
	}
}

func TestGetIsStable(t *testing.T) {
	if Get() != Get() {
		t.Error("Get returned different values")
	}

	var buf bytes.Buffer
	Fprint(&buf)
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("missing newline in %q", buf.String())
	}
}
