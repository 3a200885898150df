package autoplay

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Report summarizes a batch.
type Report struct {
	Games     int
	MeanScore float64
	StdDev    float64
	// CILow and CIHigh bound the mean score at the report's confidence level.
	CILow, CIHigh float64
	Confidence    float64
	Best          GameResult
	// TileCounts maps each final max tile to the number of games that reached it.
	TileCounts map[int]int
	Scores     []float64
}

// Summarize aggregates results. confidence is a fraction, e.g. 0.95.
func Summarize(results []GameResult, confidence float64) Report {
	r := Report{
		Games:      len(results),
		Confidence: confidence,
		TileCounts: lo.CountValuesBy(results, func(g GameResult) int { return g.MaxTile }),
		Scores:     lo.Map(results, func(g GameResult, _ int) float64 { return float64(g.Score) }),
	}
	if len(results) == 0 {
		return r
	}

	r.Best = lo.MaxBy(results, func(a, b GameResult) bool { return a.Score > b.Score })
	r.MeanScore, r.StdDev = stat.MeanStdDev(r.Scores, nil)
	r.CILow, r.CIHigh = r.MeanScore, r.MeanScore

	n := float64(len(results))
	if len(results) > 1 && !math.IsNaN(r.StdDev) {
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}
		half := t.Quantile((1+confidence)/2) * r.StdDev / math.Sqrt(n)
		r.CILow, r.CIHigh = r.MeanScore-half, r.MeanScore+half
	} else {
		r.StdDev = 0
	}
	return r
}

// ReachedRate returns the fraction of games whose max tile was at least tile.
func (r Report) ReachedRate(tile int) float64 {
	if r.Games == 0 {
		return 0
	}
	n := 0
	for t, c := range r.TileCounts {
		if t >= tile {
			n += c
		}
	}
	return float64(n) / float64(r.Games)
}

// Fprint writes the summary, the max-tile table and a score histogram.
func (r Report) Fprint(w io.Writer) error {
	if r.Games == 0 {
		_, err := fmt.Fprintln(w, "no games played")
		return err
	}

	fmt.Fprintf(w, "games:      %d\n", r.Games)
	fmt.Fprintf(w, "mean score: %.1f ± %.1f (%.0f%% CI %.1f..%.1f)\n",
		r.MeanScore, r.StdDev, r.Confidence*100, r.CILow, r.CIHigh)
	fmt.Fprintf(w, "best:       %d (game %d, seed %d, max tile %d)\n\n",
		r.Best.Score, r.Best.Index, r.Best.Seed, r.Best.MaxTile)

	tiles := lo.Keys(r.TileCounts)
	slices.Sort(tiles)
	fmt.Fprintln(w, "max tile   games   reached")
	for _, tile := range slices.Backward(tiles) {
		fmt.Fprintf(w, "%8d %7d %8.1f%%\n", tile, r.TileCounts[tile], r.ReachedRate(tile)*100)
	}

	if r.Games < 2 {
		return nil
	}
	fmt.Fprintln(w, "\nscores")
	bins := min(r.Games, 15)
	hist := histogram.Hist(bins, r.Scores)
	return histogram.Fprintf(w, hist, histogram.Linear(40), func(v float64) string {
		return strconv.Itoa(int(v))
	})
}
