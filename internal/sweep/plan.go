package sweep

import (
	"fmt"
	"strings"

	"github.com/roach88/autoopti/internal/param"
)

// Tester keys written for every coordinate.
const (
	KeyShutdownTerminal = "ShutdownTerminal"
	KeyReplaceReport    = "ReplaceReport"
	KeySymbol           = "Symbol"
	KeyPeriod           = "Period"
	KeyReport           = "Report"
)

// Coordinate is one (symbol, period) point of the grid.
type Coordinate struct {
	Symbol string `json:"symbol"`
	Period string `json:"period"`
}

func (c Coordinate) String() string {
	return c.Symbol + ":" + c.Period
}

// Coordinates returns the cross product of symbols and periods with the
// period varying fastest.
func Coordinates(symbols, periods []string) []Coordinate {
	out := make([]Coordinate, 0, len(symbols)*len(periods))
	for _, s := range symbols {
		for _, p := range periods {
			out = append(out, Coordinate{Symbol: s, Period: p})
		}
	}
	return out
}

// Total is the number of terminal runs a sweep performs.
func Total(symbols, periods, sets int) int {
	return symbols * periods * sets
}

// ReportName names the terminal report for a coordinate. Including the
// source name keeps reports from different sweeps of the same coordinate
// apart.
func ReportName(source, symbol, period string) string {
	return fmt.Sprintf("%s-%s-%s", sanitize(source), sanitize(symbol), sanitize(period))
}

// ArtifactName is the file name of the configuration artifact for a
// coordinate. It is deterministic so a run can be traced back to its
// coordinate; iterations for one coordinate are sequential so reusing the
// name is safe.
func ArtifactName(symbol, period string) string {
	return fmt.Sprintf("tmp-%s-%s.ini", sanitize(symbol), sanitize(period))
}

// sanitize replaces characters that are not safe in Windows file names.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == ' ':
			return '_'
		case strings.ContainsRune(`<>:"/\|?*`, r):
			return '_'
		}
		return r
	}, s)
}

// Step is one planned iteration.
type Step struct {
	Index    int    `json:"index" csv:"index"`
	Symbol   string `json:"symbol" csv:"symbol"`
	Period   string `json:"period" csv:"period"`
	Set      string `json:"set" csv:"set"`
	Report   string `json:"report" csv:"report"`
	Artifact string `json:"artifact" csv:"artifact"`
}

// Plan lists the iterations a sweep would perform, in execution order,
// without touching the file system or the terminal.
func Plan(src param.Source, symbols, periods []string) []Step {
	steps := make([]Step, 0, Total(len(symbols), len(periods), src.Count()))
	for _, c := range Coordinates(symbols, periods) {
		report := ReportName(src.Name(), c.Symbol, c.Period)
		artifact := ArtifactName(c.Symbol, c.Period)
		for set := range src.Sets() {
			steps = append(steps, Step{
				Index:    len(steps) + 1,
				Symbol:   c.Symbol,
				Period:   c.Period,
				Set:      set.Name,
				Report:   report,
				Artifact: artifact,
			})
		}
	}
	return steps
}
