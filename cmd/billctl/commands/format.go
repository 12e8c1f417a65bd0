package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billwise/internal/calculator"
	"github.com/mmynk/billwise/pkg/api"
)

const dateLayout = "2006-01-02"

// firstResult reads a query stream up to its first result and closes it.
func firstResult[T any](stream *connect.ServerStreamForClient[api.Envelope[T]]) (T, error) {
	defer stream.Close()

	var zero T
	for stream.Receive() {
		env := stream.Msg()
		switch env.State {
		case api.StateSuccess:
			if env.Value == nil {
				return zero, nil
			}
			return *env.Value, nil
		case api.StateError:
			return zero, envelopeError(env.Kind, env.Message)
		}
	}
	if err := stream.Err(); err != nil {
		return zero, err
	}
	return zero, errors.New("stream ended without a result")
}

func envelopeError(kind, message string) error {
	return fmt.Errorf("%s: %s", kind, message)
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	// Accept the Brazilian decimal comma.
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// parseDate reads a YYYY-MM-DD date in UTC; empty means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func brl(d decimal.Decimal) string {
	return "R$" + calculator.FormatBRL(d)
}

// parseRange reads an inclusive day range; a missing end means the start day.
func parseRange(from, to string) (time.Time, time.Time, error) {
	start, err := parseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to == "" {
		to = start.Format(dateLayout)
	}
	end, err := parseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	// Cover the whole last day.
	return start, end.Add(24*time.Hour - time.Millisecond), nil
}
