package services

import "fmt"

const cents = 0.001

var lineSeq int

// planLine returns a phone line on the given plan with a readable id.
func planLine(label string) Line {
	lineSeq++
	return Line{ID: fmt.Sprintf("line-%d", lineSeq), Label: label}
}

// deviceLine returns a data device line of the given class.
func deviceLine(label string) Line {
	l := planLine(label)
	l.DataDevice = true
	return l
}

func billOn(c Carrier, lines ...Line) Bill {
	return Bill{Account: Account{Carrier: c}, Lines: lines}
}

func prices(lines []Line) []float64 {
	out := make([]float64, len(lines))
	for i, l := range lines {
		out[i] = l.PricePerMonth
	}
	return out
}
