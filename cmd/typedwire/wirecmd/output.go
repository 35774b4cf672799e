// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wirecmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
	"github.com/bureau-foundation/typedwire/lib/codec"
	"github.com/bureau-foundation/typedwire/lib/config"
)

// outputOptions control how a decoded value is written.
type outputOptions struct {
	format  config.Output
	compact bool
	color   bool
}

// writeValue writes a decoded value to w in the chosen format.
func writeValue(w io.Writer, value any, options outputOptions) error {
	switch options.format {
	case config.OutputJSON:
		return writeJSONValue(w, value, options.compact, options.color)
	case config.OutputCBOR:
		data, err := codec.Marshal(value)
		if err != nil {
			return cli.Internal("encode CBOR: %w", err)
		}
		_, err = w.Write(data)
		return err
	case config.OutputDiag:
		data, err := codec.Marshal(value)
		if err != nil {
			return cli.Internal("encode CBOR: %w", err)
		}
		notation, err := codec.Diagnose(data)
		if err != nil {
			return cli.Internal("diagnose CBOR: %w", err)
		}
		_, err = fmt.Fprintln(w, notation)
		return err
	default:
		return cli.Validation("unknown output format %q (want json, cbor, or diag)", options.format)
	}
}

func writeJSONValue(w io.Writer, value any, compact, color bool) error {
	var (
		output []byte
		err    error
	)
	if compact {
		output, err = json.Marshal(jsonValue(value))
	} else {
		output, err = json.MarshalIndent(jsonValue(value), "", "  ")
	}
	if err != nil {
		return cli.Internal("encode JSON: %w", err)
	}

	if color {
		var highlighted bytes.Buffer
		if err := quick.Highlight(&highlighted, string(output), "json", "terminal256", "monokai"); err == nil {
			output = highlighted.Bytes()
		}
	}

	_, err = fmt.Fprintln(w, string(output))
	return err
}

// jsonValue rewrites a decoded value into one encoding/json renders
// faithfully: byte slices become number arrays rather than base64, and
// non-finite floats become the strings "NaN", "+Inf", and "-Inf".
func jsonValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, element := range v {
			out[key] = jsonValue(element)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, element := range v {
			out[i] = jsonValue(element)
		}
		return out
	case []uint8:
		out := make([]int, len(v))
		for i, element := range v {
			out[i] = int(element)
		}
		return out
	case []float32:
		out := make([]any, len(v))
		for i, element := range v {
			out[i] = jsonValue(element)
		}
		return out
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return fmt.Sprint(v)
		}
		return v
	default:
		return value
	}
}

// colorEnabled reports whether JSON written to w should be highlighted.
func colorEnabled(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		file, ok := w.(*os.File)
		return ok && term.IsTerminal(int(file.Fd()))
	}
}
