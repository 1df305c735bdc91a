package cli

import (
	"fmt"

	"github.com/embatbr/subtitler/internal/config"
	"github.com/embatbr/subtitler/internal/logging"
	"github.com/embatbr/subtitler/internal/subtitle"
	"github.com/spf13/cobra"
)

// flags shared by every command that rewrites captions
type processOptions struct {
	Offset  string
	Indexes string
	NoDeaf  bool
	Lenient bool
}

type processResult struct {
	Captions int
	Removed  int
	Shifted  bool
	Clamped  int
}

func addProcessFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringP("time", "t", "", "Shift by [-]HH:MM:SS,mmm (leading '-' moves captions earlier)")
	cmd.Flags().
		String("indexes", "", "Only shift these 1-based captions, e.g. 1,4,10-12 (requires --time)")
	cmd.Flags().
		Bool("nodeaf", false, "Remove hearing-impaired annotations such as [door slams] or JOHN:")
	cmd.Flags().
		Bool("lenient", false, "Keep malformed time periods as caption text instead of failing (output then fails a strict re-read)")
}

func processOptionsFromFlags(cmd *cobra.Command, c *config.Config) processOptions {
	offset, _ := cmd.Flags().GetString("time")
	indexes, _ := cmd.Flags().GetString("indexes")
	noDeaf, _ := cmd.Flags().GetBool("nodeaf")
	lenient, _ := cmd.Flags().GetBool("lenient")

	if !cmd.Flags().Changed("lenient") && c != nil {
		lenient = c.Lenient
	}

	return processOptions{
		Offset:  offset,
		Indexes: indexes,
		NoDeaf:  noDeaf,
		Lenient: lenient,
	}
}

// process runs load -> filter -> shift -> save. Arguments are validated
// before the input is read and nothing is written unless every step passed.
func process(
	log *logging.Logger,
	c *config.Config,
	inputPath, outputPath string,
	opts processOptions,
) (processResult, error) {
	var result processResult

	var delta subtitle.Timestamp
	sign := subtitle.Forward
	if opts.Offset != "" {
		var err error
		delta, sign, err = subtitle.ParseOffset(opts.Offset)
		if err != nil {
			return result, fmt.Errorf("invalid --time value: %w", err)
		}
	}

	ranges, err := subtitle.ParseIndexes(opts.Indexes)
	if err != nil {
		return result, fmt.Errorf("invalid --indexes value: %w", err)
	}
	if len(ranges) > 0 && opts.Offset == "" {
		return result, fmt.Errorf("--indexes requires --time")
	}

	var filter *subtitle.DeafFilter
	if opts.NoDeaf {
		if c == nil {
			c = config.Default()
		}
		filter, err = subtitle.NewDeafFilter(c.DeafRules())
		if err != nil {
			return result, fmt.Errorf("invalid hearing-impaired rules: %w", err)
		}
	}

	log.Debugw("Parsing subtitle file", "input", inputPath, "lenient", opts.Lenient)
	parseOpts := subtitle.ParseOptions{
		Lenient: opts.Lenient,
		OnAbsorb: func(pe *subtitle.ParseError) {
			log.Warnw("Malformed time period kept as caption text",
				"line", pe.Line,
				"text", pe.Text,
			)
		},
	}
	doc, err := subtitle.Load(inputPath, parseOpts)
	if err != nil {
		return result, err
	}
	log.Infow("Parsed subtitle file", "captions", doc.Len())

	if filter != nil {
		result.Removed = doc.Filter(filter)
		log.Infow("Removed hearing-impaired captions",
			"removed", result.Removed,
			"remaining", doc.Len(),
		)
	}

	if opts.Offset != "" {
		if err := doc.ShiftSelected(delta, sign, ranges); err != nil {
			return result, fmt.Errorf("shift failed: %w", err)
		}
		result.Shifted = true
		log.Infow("Shifted captions",
			"offset", opts.Offset,
			"indexes", opts.Indexes,
		)

		if n := doc.NegativeCount(); n > 0 {
			result.Clamped = n
			log.Warnw("Captions moved before 00:00:00,000 are written as 00:00:00,000",
				"captions", n,
			)
		}
	}

	log.Debugw("Writing output file", "output", outputPath)
	if err := doc.Save(outputPath); err != nil {
		return result, fmt.Errorf("failed to write subtitles: %w", err)
	}

	result.Captions = doc.Len()
	return result, nil
}
