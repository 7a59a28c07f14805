package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ersonp/gedcheck/internal/application/handlers"
	"github.com/ersonp/gedcheck/internal/domain/ports"
	"github.com/ersonp/gedcheck/internal/domain/services"
	llm "github.com/ersonp/gedcheck/internal/infrastructure/llm/openai"
)

type validateFlags struct {
	format      string
	inputFormat string
	output      string
	snapshot    string
	rules       []string
	parallel    bool
	explain     bool
	strict      bool
}

func newValidateCmd() *cobra.Command {
	var flags validateFlags

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a family tree for duplicate IDs and broken cross-references",
		Long: "Runs US22 (unique IDs) and US26 (corresponding entries) against a GEDCOM or JSON file,\n" +
			"or against a snapshot stored with the import command.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Report format (text, json, csv); defaults to output.format")
	cmd.Flags().StringVar(&flags.inputFormat, "input-format", "auto", "Input file format (gedcom, json, auto)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&flags.snapshot, "snapshot", "s", "", "Validate a stored snapshot instead of a file")
	cmd.Flags().StringSliceVarP(&flags.rules, "rules", "r", nil, "Rules to run (US22, US26); defaults to validation.rules")
	cmd.Flags().BoolVar(&flags.parallel, "parallel", false, "Run rules concurrently")
	cmd.Flags().BoolVar(&flags.explain, "explain", false, "Append an LLM summary of the findings to the report")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit with an error when findings exist")

	return cmd
}

// errFindings is returned in strict mode so the process exits non-zero.
var errFindings = errors.New("integrity problems found")

func runValidate(cmd *cobra.Command, args []string, flags validateFlags) error {
	switch {
	case len(args) == 0 && flags.snapshot == "":
		return errors.New("specify a file or --snapshot")
	case len(args) > 0 && flags.snapshot != "":
		return errors.New("a file and --snapshot cannot be combined")
	}

	ctx := cmd.Context()

	run := func(d *Deps, store ports.RecordStore) error {
		format := flags.format
		if format == "" {
			format = d.Config.Output.Format
		}
		if !slices.Contains(validFormats, format) {
			return fmt.Errorf("invalid format %q, valid formats: %v", format, validFormats)
		}

		service, err := newValidationService(d, flags)
		if err != nil {
			return err
		}
		handler := handlers.NewValidateHandler(service, store)

		var result *handlers.ValidateResult
		if flags.snapshot != "" {
			result, err = handler.HandleSnapshot(ctx, flags.snapshot)
		} else {
			result, err = handler.Handle(ctx, args[0], handlers.ValidateOptions{Format: flags.inputFormat})
		}
		if err != nil {
			return err
		}

		var explainer *handlers.ExplainHandler
		if flags.explain {
			if explainer, err = newExplainHandler(d); err != nil {
				return err
			}
		}

		if err := writeOutput(flags.output, func(w io.Writer) error {
			return writeValidation(ctx, w, format, result, explainer)
		}); err != nil {
			return err
		}

		if flags.strict && len(result.Findings) > 0 {
			return fmt.Errorf("%w: %d", errFindings, len(result.Findings))
		}
		return nil
	}

	if flags.snapshot != "" {
		return withStore(ctx, run)
	}
	return withDeps(func(d *Deps) error {
		return run(d, nil)
	})
}

// newValidationService builds the service from config, letting flags take precedence.
func newValidationService(d *Deps, flags validateFlags) (*services.ValidationService, error) {
	names := d.Config.Validation.Rules
	if len(flags.rules) > 0 {
		names = flags.rules
	}

	rules, err := services.ParseRules(names)
	if err != nil {
		return nil, err
	}

	return services.NewValidationService(services.ValidationOptions{
		Rules:    rules,
		Parallel: flags.parallel || d.Config.Validation.Parallel,
	}, d.Logger), nil
}

func newExplainHandler(d *Deps) (*handlers.ExplainHandler, error) {
	client, err := llm.NewClient(d.Config.LLM)
	if err != nil {
		return nil, fmt.Errorf("creating llm client: %w", err)
	}
	return handlers.NewExplainHandler(services.NewExplainService(client)), nil
}

// writeValidation writes the report, followed by the LLM summary when explainer is set.
func writeValidation(ctx context.Context, w io.Writer, format string, result *handlers.ValidateResult, explainer *handlers.ExplainHandler) error {
	if err := writeReport(w, format, result); err != nil {
		return err
	}
	if explainer == nil {
		return nil
	}

	summary, err := explainer.Handle(ctx, result.Report)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "\n%s\n", summary)
	return err
}

// writeOutput calls write with stdout, or with the named file when output is set.
func writeOutput(output string, write func(io.Writer) error) (err error) {
	if output == "" {
		return write(os.Stdout)
	}

	f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	fmt.Printf("Wrote report to %s\n", output)
	return nil
}
