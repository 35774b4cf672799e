// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wirecmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bureau-foundation/typedwire/cmd/typedwire/cli"
	"github.com/bureau-foundation/typedwire/lib/wireschema"
)

type layoutParams struct {
	schemaParams
	cli.JSONOutput
}

// layoutRow describes one property of an object schema. Offset and
// Size are nil when unbounded.
type layoutRow struct {
	Name   string `json:"name"`
	Schema string `json:"schema"`
	Offset *int   `json:"offset"`
	Size   *int   `json:"max_size"`
}

// layoutResult is the --json output of layout.
type layoutResult struct {
	Fingerprint string      `json:"fingerprint"`
	Properties  []layoutRow `json:"properties"`
	Size        *int        `json:"max_size"`
}

func layoutCommand() *cli.Command {
	var params layoutParams

	return &cli.Command{
		Name:    "layout",
		Summary: "Show where each property of an object schema sits",
		Description: `Print a table of the root object's properties with the byte offset
each one starts at and the most bytes it can take, assuming every
earlier property is as large as it can be.

An offset is exact for every value when no earlier property can vary in
size. Past the first variable-size property the offset is "unbounded".

The root must be an object, or a keyed schema whose body is an object.`,
		Usage: "typedwire layout --schema FILE [--json]",
		Examples: []cli.Example{
			{
				Description: "Show a header's field offsets",
				Command:     "typedwire layout -s header.yaml",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			return runLayout(&params, args, standardStreams(), logger)
		},
	}
}

func runLayout(params *layoutParams, args []string, std streams, logger *slog.Logger) error {
	if len(args) > 0 {
		return cli.Validation("layout takes no positional arguments, got %q", args[0])
	}
	session, err := params.load("layout", logger)
	if err != nil {
		return err
	}

	rows, err := objectLayout(session.definition.Schema)
	if err != nil {
		return err
	}
	result := layoutResult{
		Fingerprint: session.definition.Fingerprint.String(),
		Properties:  rows,
		Size:        boundedSize(session.definition.Schema),
	}
	if done, err := params.EmitJSON(std.stdout, result); done {
		return err
	}
	return renderLayout(std.stdout, result)
}

// objectLayout lists the properties of an object root with their
// worst-case offsets and sizes.
func objectLayout(schema wireschema.Schema) ([]layoutRow, error) {
	var (
		object *wireschema.ObjectSchema
		seek   func(value any, name string) (int, bool)
	)
	switch root := schema.(type) {
	case *wireschema.ObjectSchema:
		object, seek = root, root.SeekProperty
	case *wireschema.KeyedSchema:
		inner, ok := root.Inner().(*wireschema.ObjectSchema)
		if !ok {
			return nil, cli.Validation("layout needs an object root, got %s with a %s body", root, root.Inner())
		}
		object, seek = inner, root.SeekProperty
	default:
		return nil, cli.Validation("layout needs an object root, got %s", schema)
	}

	rows := make([]layoutRow, 0, len(object.Properties()))
	for _, property := range object.Properties() {
		row := layoutRow{
			Name:   property.Name,
			Schema: fmt.Sprint(property.Schema),
			Size:   boundedSize(property.Schema),
		}
		if offset, ok := seek(wireschema.MaxValue, property.Name); ok {
			row.Offset = &offset
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func boundedSize(schema wireschema.Schema) *int {
	size, ok := wireschema.SizeOf(schema, wireschema.MaxValue)
	if !ok {
		return nil
	}
	return &size
}

func formatSize(size *int) string {
	if size == nil {
		return "unbounded"
	}
	return strconv.Itoa(*size)
}

var (
	layoutHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	layoutCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderLayout(w io.Writer, result layoutResult) error {
	layout := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PROPERTY", "SCHEMA", "OFFSET", "MAX SIZE").
		StyleFunc(func(row, column int) lipgloss.Style {
			if row == table.HeaderRow {
				return layoutHeaderStyle
			}
			if column >= 2 {
				return layoutCellStyle.Align(lipgloss.Right)
			}
			return layoutCellStyle
		})
	for _, row := range result.Properties {
		layout.Row(row.Name, row.Schema, formatSize(row.Offset), formatSize(row.Size))
	}

	_, err := fmt.Fprintf(w, "%s\ntotal: %s\n", layout.Render(), formatSize(result.Size))
	return err
}
