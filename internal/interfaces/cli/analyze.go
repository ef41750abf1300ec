package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/turtacn/AstroAspect-Intelligence/internal/application/analysis"
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/errors"
)

// NewAnalyzeCmd analyses one chart, or a list of charts with --batch.
func NewAnalyzeCmd() *cobra.Command {
	var (
		input   string
		chartID string
		maxOrb  float64
		batch   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyse chart positions from a JSON or YAML file",
		Long: `Analyse chart positions read from --input ("-" for stdin).

The file holds an object with a "positions" map keyed by body name, e.g.

  chart_id: natal-1
  positions:
    Sun:  {longitude: 12.5}
    Moon: {longitude: 101.2, sign: Cancer, sign_degree: 11.2}

With --batch the file holds a list of such objects.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if input == "" {
				return errors.InvalidParam("--input is required")
			}
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			if batch {
				var reqs []*analysis.AnalyzeRequest
				if err := decodeInput(input, data, &reqs); err != nil {
					return err
				}
				for _, r := range reqs {
					if r != nil && maxOrb > 0 {
						r.MaxOrb = maxOrb
					}
				}
				resp, err := cliCtx.Service.AnalyzeBatch(ctx, reqs)
				if err != nil {
					return err
				}
				return PrintResult(cmd, batchReport{resp})
			}

			var req analysis.AnalyzeRequest
			if err := decodeInput(input, data, &req); err != nil {
				return err
			}
			if chartID != "" {
				req.ChartID = chartID
			}
			if maxOrb > 0 {
				req.MaxOrb = maxOrb
			}
			resp, err := cliCtx.Service.Analyze(ctx, &req)
			if err != nil {
				return err
			}
			return PrintResult(cmd, report{resp})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "chart file (.json, .yaml, .yml) or - for stdin")
	f.StringVar(&chartID, "chart-id", "", "override the chart id")
	f.Float64Var(&maxOrb, "max-orb", 0, "orb ceiling in degrees (0 keeps the configured table)")
	f.BoolVar(&batch, "batch", false, "input holds a list of charts")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "cannot read input")
	}
	return data, nil
}

// decodeInput parses JSON for .json files and YAML otherwise; YAML also
// accepts JSON documents read from stdin.
func decodeInput(path string, data []byte, dest interface{}) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, dest)
	} else {
		err = yaml.Unmarshal(data, dest)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "cannot parse input")
	}
	return nil
}

// report renders one analysis. JSON and YAML output use the response as is.
type report struct {
	*analysis.AnalyzeResponse
}

func (r report) MarshalJSON() ([]byte, error)      { return json.Marshal(r.AnalyzeResponse) }
func (r report) MarshalYAML() (interface{}, error) { return r.AnalyzeResponse, nil }

func (r report) Tables() []Table {
	resp := r.AnalyzeResponse
	title := "Chart"
	if resp.ChartID != "" {
		title += " " + resp.ChartID
	}

	bodies := make([]string, 0, len(resp.Positions))
	for b := range resp.Positions {
		bodies = append(bodies, b)
	}
	sort.Strings(bodies)
	positions := Table{Title: title, Headers: []string{"BODY", "LONGITUDE", "POSITION", "MENTIONS"}}
	for _, b := range bodies {
		p := resp.Positions[b]
		positions.Rows = append(positions.Rows, []string{
			b, strconv.FormatFloat(p.Longitude, 'f', 2, 64), p.Display, strconv.Itoa(resp.Mentions.Counts[b]),
		})
	}

	aspects := Table{Title: fmt.Sprintf("Aspects (%d)", len(resp.Aspects)), Headers: []string{"ASPECT", "ORB", "SOURCE", "OWNER"}}
	for _, a := range resp.Aspects {
		aspects.Rows = append(aspects.Rows, []string{
			a.Body1 + " " + a.Kind + " " + a.Body2, strconv.FormatFloat(a.Orb, 'f', 2, 64), a.Source, a.Owner,
		})
	}

	patterns := Table{Title: fmt.Sprintf("Patterns (%d)", len(resp.Patterns)), Headers: []string{"TYPE", "BODIES", "AVG ORB", "SCORE", "OWNERS"}}
	for _, p := range resp.Patterns {
		avg := "-"
		if p.AvgOrb < aspect.NoOrb {
			avg = strconv.FormatFloat(p.AvgOrb, 'f', 2, 64)
		}
		patterns.Rows = append(patterns.Rows, []string{
			p.Type, strings.Join(p.Bodies, ", "), avg, strconv.FormatFloat(p.Score, 'f', 2, 64), strings.Join(p.Owners, ", "),
		})
	}

	tables := []Table{positions, aspects, patterns}
	if len(resp.Skipped) > 0 {
		skipped := Table{Title: "Skipped", Headers: []string{"INPUT", "REASON"}}
		for _, s := range resp.Skipped {
			skipped.Rows = append(skipped.Rows, []string{s.Body, s.Reason})
		}
		tables = append(tables, skipped)
	}
	return tables
}

type batchReport struct {
	*analysis.BatchResponse
}

func (r batchReport) MarshalJSON() ([]byte, error)      { return json.Marshal(r.BatchResponse) }
func (r batchReport) MarshalYAML() (interface{}, error) { return r.BatchResponse, nil }

func (r batchReport) Tables() []Table {
	t := Table{
		Title:   fmt.Sprintf("Batch: %d succeeded, %d failed", r.Succeeded, r.Failed),
		Headers: []string{"#", "CHART", "ASPECTS", "PATTERNS", "ERROR"},
	}
	for _, it := range r.Items {
		row := []string{strconv.Itoa(it.Index), "", "", "", ""}
		if it.Response != nil {
			row[1] = it.Response.ChartID
			row[2] = strconv.Itoa(len(it.Response.Aspects))
			row[3] = strconv.Itoa(len(it.Response.Patterns))
		}
		if it.Error != nil {
			row[4] = it.Error.Code + ": " + it.Error.Message
		}
		t.Rows = append(t.Rows, row)
	}
	return []Table{t}
}

//Personal.AI order the ending
