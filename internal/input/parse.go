// Package input turns user-entered text into measurement series. Both the
// period and the comma are accepted as decimal separators.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"rateorder/domain/kinetics"
	"rateorder/internal/errors"
)

// ParseNumber parses a single value, normalizing a decimal comma to a period
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.ParseError("empty value", nil)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, errors.ParseError(fmt.Sprintf("invalid number %q", s), err)
	}
	return v, nil
}

// ParseValues parses a whitespace separated list of numbers
func ParseValues(line string) ([]float64, error) {
	fields := strings.Fields(line)
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := ParseNumber(f)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseSeries parses the time and concentration lines into a series. The two
// lines must hold the same number of values.
func ParseSeries(timeLine, concentrationLine string) (kinetics.Series, error) {
	time, err := ParseValues(timeLine)
	if err != nil {
		return kinetics.Series{}, errors.Wrap(err, "time values")
	}
	conc, err := ParseValues(concentrationLine)
	if err != nil {
		return kinetics.Series{}, errors.Wrap(err, "concentration values")
	}
	if len(time) != len(conc) {
		return kinetics.Series{}, kinetics.ErrLengthMismatch
	}
	return kinetics.Series{Time: time, Concentration: conc}, nil
}

// Prompts shown by ReadInteractive
const (
	TimePrompt          = "Enter time values (in seconds) separated by spaces: "
	ConcentrationPrompt = "Enter concentration values (in mol/L) separated by spaces: "
)

// ReadInteractive prompts for the two value lines on out and reads them from in
func ReadInteractive(in io.Reader, out io.Writer) (kinetics.Series, error) {
	scanner := bufio.NewScanner(in)

	readLine := func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return strings.TrimSpace(scanner.Text()), nil
	}

	timeLine, err := readLine(TimePrompt)
	if err != nil {
		return kinetics.Series{}, errors.ParseError("reading time values", err)
	}
	concLine, err := readLine(ConcentrationPrompt)
	if err != nil {
		return kinetics.Series{}, errors.ParseError("reading concentration values", err)
	}
	return ParseSeries(timeLine, concLine)
}
