package service

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	perr "asusnumpad/internal/platform/errors"
	"asusnumpad/internal/services/bringup/domain"
)

// Collector gathers configuration from a terminal. It implements
// domain.CollectorPort; non-interactive runs inject a preset instead
type Collector struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewCollector reads selections from in and writes menus to out
func NewCollector(in io.Reader, out io.Writer) *Collector {
	return &Collector{in: bufio.NewScanner(in), out: out}
}

// Collect walks the menus and prompts in installer order
func (c *Collector) Collect(models []string) (domain.Config, error) {
	model, err := c.selectModel(models)
	if err != nil {
		return domain.Config{}, err
	}
	kb, err := c.selectKeyboard()
	if err != nil {
		return domain.Config{}, err
	}
	numpadDelay, err := c.promptDelay("Numpad activation delay in seconds", domain.DefaultDelay)
	if err != nil {
		return domain.Config{}, err
	}
	customDelay, err := c.promptDelay("Custom key activation delay in seconds", domain.DefaultDelay)
	if err != nil {
		return domain.Config{}, err
	}
	return domain.Config{
		Model:          model,
		PercentageKey:  kb.PercentageKey,
		NumpadDelay:    numpadDelay,
		CustomKeyDelay: customDelay,
	}, nil
}

func (c *Collector) selectModel(models []string) (string, error) {
	fmt.Fprintln(c.out, "Select your laptop model:")
	for i, m := range models {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, m)
	}
	fmt.Fprintln(c.out, "  q) quit")

	n, err := c.readChoice(len(models))
	if err != nil {
		return "", err
	}
	return models[n-1], nil
}

func (c *Collector) selectKeyboard() (domain.Keyboard, error) {
	fmt.Fprintln(c.out, "Select your keyboard layout:")
	for i, k := range domain.Keyboards {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, k.Name)
	}
	fmt.Fprintln(c.out, "  q) quit")

	n, err := c.readChoice(len(domain.Keyboards))
	if err != nil {
		return domain.Keyboard{}, err
	}
	return domain.Keyboards[n-1], nil
}

// readChoice accepts 1..max or q; anything else is a hard failure, the
// installer never re-prompts
func (c *Collector) readChoice(max int) (int, error) {
	line, err := c.readLine()
	if err != nil {
		return 0, perr.InvalidOptionf("no selection read")
	}
	if strings.EqualFold(line, "q") {
		return 0, perr.InvalidOptionf("aborted by user")
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > max {
		return 0, perr.InvalidOptionf("selection %q is not between 1 and %d", line, max)
	}
	return n, nil
}

// promptDelay shows the daemon default for reference; the typed value must
// still parse as a non-negative number of seconds
func (c *Collector) promptDelay(label string, def float64) (float64, error) {
	fmt.Fprintf(c.out, "%s (daemon default %v): ", label, def)
	line, err := c.readLine()
	if err != nil {
		return 0, perr.InvalidDurationf("no duration read")
	}
	v, convErr := strconv.ParseFloat(line, 64)
	if convErr != nil {
		return 0, perr.InvalidDurationf("%q is not a number of seconds", line)
	}
	if v < 0 {
		return 0, perr.InvalidDurationf("delay must not be negative, got %v", v)
	}
	return v, nil
}

func (c *Collector) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}
