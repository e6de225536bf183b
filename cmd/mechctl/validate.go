package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	fv "github.com/BruksfildServices01/mechapp/internal/domain/formvalidation"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <login|register|recovery|review> field=value...",
		Short: "Run the form validation rules over field values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := fv.Values{}
			for _, kv := range args[1:] {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("expected field=value, got %q", kv)
				}
				switch k {
				case fv.FieldTerms:
					values[k] = fv.Checkbox(v == "true" || v == "on")
				case fv.FieldCertificate:
					values[k] = fv.Files(fv.File{Name: v})
				default:
					values[k] = fv.Text(v)
				}
			}

			errs, err := fv.Validate(fv.FormType(args[0]), values)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if errs.Empty() {
				fmt.Fprintln(out, "ok")
				return nil
			}

			fields := make([]string, 0, len(errs))
			for f := range errs {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				fmt.Fprintf(out, "%s: %s\n", f, strings.Join(errs[f], " "))
			}
			return fmt.Errorf("%d invalid fields", len(fields))
		},
	}
}
